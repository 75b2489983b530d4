package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// NodeHandler expone el registro de nodos.
type NodeHandler struct {
	registry *inventory.NodeRegistry
	log      *logger.Logger
}

// NewNodeHandler construye el handler.
func NewNodeHandler(registry *inventory.NodeRegistry, log *logger.Logger) *NodeHandler {
	return &NodeHandler{registry: registry, log: log}
}

// List godoc
// @Summary      Listar nodos
// @Description  Ordenados por tipo y nombre. types filtra por tipo (WAREHOUSE, LOCATION, SUPPLIER, CUSTOMER, ASSET, VIRTUAL).
// @Tags         nodes
// @Security     Bearer
// @Produce      json
// @Param        types  query  string  false  "Tipos separados por coma"
// @Success      200  {object}  dto.NodeListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/nodes [get]
func (h *NodeHandler) List(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	var types []entity.NodeType
	for _, raw := range splitList(c.Query("types")) {
		t, err := entity.ParseNodeType(raw)
		if err != nil {
			return writeError(c, h.log, err)
		}
		types = append(types, t)
	}
	nodes, err := h.registry.List(c.UserContext(), orgID, types)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toNodeListResponse(nodes))
}

// GetByID godoc
// @Summary      Obtener nodo
// @Tags         nodes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del nodo"
// @Success      200  {object}  dto.NodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/nodes/{id} [get]
func (h *NodeHandler) GetByID(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	n, err := h.registry.GetByID(c.UserContext(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toNodeResponse(n))
}

// CreateVirtual godoc
// @Summary      Crear nodo virtual
// @Description  La clave se normaliza a mayúsculas. Una clave existente responde 409.
// @Tags         nodes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNodeRequest  true  "Nodo virtual"
// @Success      201  {object}  dto.NodeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/nodes [post]
func (h *NodeHandler) CreateVirtual(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	var in dto.CreateNodeRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	key := strings.ToUpper(strings.TrimSpace(in.Key))
	n, err := h.registry.CreateVirtualNode(c.UserContext(), orgID, key, strings.TrimSpace(in.Name), strings.TrimSpace(in.Code), in.IsStocked, toNodeMeta(in.Meta))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toNodeResponse(n))
}

// Bootstrap godoc
// @Summary      Aprovisionar nodos virtuales
// @Description  Crea (o actualiza) EXTERNAL y ADJUSTMENT para la organización. Idempotente.
// @Tags         nodes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NodeListResponse
// @Router       /api/nodes/bootstrap [post]
func (h *NodeHandler) Bootstrap(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	nodes, err := h.registry.BootstrapVirtualNodes(c.UserContext(), orgID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toNodeListResponse(nodes))
}
