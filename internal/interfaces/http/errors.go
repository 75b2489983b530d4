package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// errorCodes código específico por error de dominio; el orden importa porque un error
// envuelto puede coincidir con varios.
var errorCodes = []struct {
	err  error
	code string
}{
	{domain.ErrSameNode, "SAME_NODE"},
	{domain.ErrBadFromNode, "BAD_FROM_NODE"},
	{domain.ErrBadToNode, "BAD_TO_NODE"},
	{domain.ErrBadItem, "BAD_ITEM"},
	{domain.ErrBadUnit, "BAD_UNIT"},
	{domain.ErrInvalidQuantity, "INVALID_QUANTITY"},
	{domain.ErrNoLines, "NO_LINES"},
	{domain.ErrInvalidStatus, "INVALID_STATUS"},
	{domain.ErrInvalidNodeType, "INVALID_NODE_TYPE"},
	{domain.ErrImmutable, "IMMUTABLE"},
	{domain.ErrInvalidTransition, "INVALID_TRANSITION"},
	{domain.ErrNodeInUse, "NODE_IN_USE"},
	{domain.ErrHasChildren, "HAS_CHILDREN"},
	{domain.ErrDuplicate, "DUPLICATE"},
	{domain.ErrConflict, "CONFLICT"},
	{domain.ErrNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, "FORBIDDEN"},
	{domain.ErrInvalidInput, "VALIDATION"},
}

// writeError traduce un error de caso de uso a la respuesta HTTP.
// Los errores internos se registran y se responden sin detalle.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	kind := domain.KindOf(err)
	status := statusFor(kind)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("organization_id", GetOrganizationID(c)).
			Msg("error interno")
		return c.Status(status).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}

	resp := dto.ErrorResponse{Code: errorCode(err, kind), Message: err.Error()}
	var le *domain.LineError
	if errors.As(err, &le) {
		idx := le.Index
		resp.LineIndex = &idx
	}
	return c.Status(status).JSON(resp)
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindReferential:
		return fiber.StatusBadRequest
	case domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func errorCode(err error, kind domain.Kind) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	if kind == domain.KindConflict {
		return "CONFLICT"
	}
	return "VALIDATION"
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "organization_id requerido"})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}
