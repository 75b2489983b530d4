package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// BalanceHandler expone la proyección de saldos y su exportación.
type BalanceHandler struct {
	balances *inventory.BalanceUseCase
	reports  *inventory.BalanceReportUseCase
	log      *logger.Logger
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(balances *inventory.BalanceUseCase, reports *inventory.BalanceReportUseCase, log *logger.Logger) *BalanceHandler {
	return &BalanceHandler{balances: balances, reports: reports, log: log}
}

// List godoc
// @Summary      Saldos por nodo e ítem
// @Description  Recalculados desde el libro. Sin statuses solo cuenta POSTED. Las filas en cero se omiten.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        node_ids   query  string  false  "IDs de nodo separados por coma"
// @Param        item_ids   query  string  false  "IDs de ítem separados por coma"
// @Param        statuses   query  string  false  "DRAFT,POSTED,CANCELLED"
// @Param        from_date  query  string  false  "YYYY-MM-DD o RFC3339 (inclusive)"
// @Param        to_date    query  string  false  "YYYY-MM-DD o RFC3339 (inclusive)"
// @Success      200  {object}  dto.BalanceListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances [get]
func (h *BalanceHandler) List(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	q, e := balanceQuery(c)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	rows, err := h.balances.GetBalances(c.UserContext(), orgID, q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.BalanceListResponse{Items: make([]dto.BalanceResponse, 0, len(rows)), Total: len(rows)}
	for _, r := range rows {
		out.Items = append(out.Items, toBalanceResponse(r))
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar saldos
// @Description  Mismos filtros que /inventory/balances, en PDF o XLSX.
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format     query  string  true   "pdf | xlsx"
// @Param        node_ids   query  string  false  "IDs de nodo separados por coma"
// @Param        item_ids   query  string  false  "IDs de ítem separados por coma"
// @Param        statuses   query  string  false  "DRAFT,POSTED,CANCELLED"
// @Param        from_date  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        to_date    query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances/export [get]
func (h *BalanceHandler) Export(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	q, e := balanceQuery(c)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	file, err := h.reports.Export(c.UserContext(), orgID, c.Query("format", "pdf"), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Content)
}

func balanceQuery(c *fiber.Ctx) (inventory.BalanceQuery, *dto.ErrorResponse) {
	q := inventory.BalanceQuery{
		NodeIDs:  splitList(c.Query("node_ids")),
		ItemIDs:  splitList(c.Query("item_ids")),
		Statuses: splitList(c.Query("statuses")),
	}
	var err error
	if q.From, err = parseDateParam(c.Query("from_date"), false); err != nil {
		return q, &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error(), Fields: map[string]string{"from_date": err.Error()}}
	}
	if q.To, err = parseDateParam(c.Query("to_date"), true); err != nil {
		return q, &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error(), Fields: map[string]string{"to_date": err.Error()}}
	}
	return q, nil
}
