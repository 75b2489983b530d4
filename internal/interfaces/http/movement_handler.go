package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// MovementHandler expone el libro de movimientos.
type MovementHandler struct {
	uc  *inventory.MovementUseCase
	log *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar evento de movimiento
// @Description  Valida todas las líneas; si una falla no se guarda nada y line_index indica cuál.
// @Description  Acepta lines[] o una sola línea con item_id, unit_id, from_node_id, to_node_id y quantity en la raíz.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Evento y líneas"
// @Success      201  {object}  dto.MovementEventResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	var in dto.CreateMovementRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.CreateEvent(c.UserContext(), inventory.CreateEventInput{
		OrganizationID: orgID,
		CreatedBy:      GetUserID(c),
		EventType:      in.EventType,
		Status:         in.Status,
		OccurredAt:     in.OccurredAt,
		ReferenceType:  in.ReferenceType,
		ReferenceID:    in.ReferenceID,
		Note:           in.Note,
		Lines:          toLineInputs(in.LineRequests()),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEventResponse(out))
}

// List godoc
// @Summary      Listar movimientos recientes
// @Description  Líneas más recientes primero (occurred_at, id), con etiquetas de nodos, ítem y unidad.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(100)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	limit := h.uc.ListLimit(c.QueryInt("limit", 0))
	views, err := h.uc.ListMovements(c.UserContext(), orgID, limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.MovementListResponse{Items: make([]dto.MovementListItem, 0, len(views)), Limit: limit}
	for _, v := range views {
		out.Items = append(out.Items, toMovementListItem(v))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar línea en borrador
// @Description  Reemplaza la línea y actualiza la cabecera del evento. 409 si el evento ya no es DRAFT.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la línea"
// @Param        body  body  dto.UpdateMovementRequest  true  "Línea y cabecera"
// @Success      200  {object}  dto.MovementEventResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateMovementRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.UpdateDraftLine(c.UserContext(), inventory.UpdateLineInput{
		OrganizationID: orgID,
		LineID:         c.Params("id"),
		EventType:      in.EventType,
		Status:         in.Status,
		OccurredAt:     in.OccurredAt,
		ReferenceType:  in.ReferenceType,
		ReferenceID:    in.ReferenceID,
		Note:           in.Note,
		Line:           toLineInput(in.MovementLineRequest),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toEventResponse(out))
}

// Delete godoc
// @Summary      Borrar línea en borrador
// @Description  Si era la última línea del evento, el evento también se borra.
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	if err := h.uc.DeleteDraftLine(c.UserContext(), orgID, c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetEvent godoc
// @Summary      Obtener evento con sus líneas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.MovementEventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movement-events/{id} [get]
func (h *MovementHandler) GetEvent(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetEvent(c.UserContext(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toEventResponse(out))
}

// Post godoc
// @Summary      Contabilizar evento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.MovementEventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movement-events/{id}/post [post]
func (h *MovementHandler) Post(c *fiber.Ctx) error {
	return h.transition(c, entity.StatusPosted)
}

// Cancel godoc
// @Summary      Cancelar evento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.MovementEventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movement-events/{id}/cancel [post]
func (h *MovementHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, entity.StatusCancelled)
}

func (h *MovementHandler) transition(c *fiber.Ctx, next entity.MovementStatus) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.TransitionEvent(c.UserContext(), orgID, c.Params("id"), next)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toEventResponse(out))
}
