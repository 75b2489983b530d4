package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
)

// validate instancia compartida; los nombres de campo salen del tag json.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodifica el cuerpo JSON y aplica las reglas `validate` del DTO.
// Devuelve la respuesta de error lista para enviar, o nil.
func parseBody(c *fiber.Ctx, out interface{}) *dto.ErrorResponse {
	if err := c.BodyParser(out); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = ruleMessage(fe)
	}
	return &dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: fields}
}

// fieldPath quita el nombre del struct raíz: "CreateMovementRequest.lines[0].item_id" -> "lines[0].item_id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "requerido"
	case "uuid":
		return "debe ser un UUID"
	case "email":
		return "email inválido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "min":
		return "mínimo " + fe.Param()
	default:
		return fmt.Sprintf("no cumple la regla %s", fe.Tag())
	}
}

// splitList separa una lista "a,b,c" de la query, sin vacíos.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDateParam acepta RFC3339 o YYYY-MM-DD. Una fecha sin hora usada como
// límite superior cubre el día completo.
func parseDateParam(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("fecha %q: use YYYY-MM-DD o RFC3339", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// pageParams lee limit/offset con los mismos topes que los casos de uso.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
