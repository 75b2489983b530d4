package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores del libro de movimientos y del registro de nodos.
var (
	ErrSameNode          = errors.New("nodo origen y destino son el mismo")
	ErrBadFromNode       = errors.New("nodo origen inexistente o de otra organización")
	ErrBadToNode         = errors.New("nodo destino inexistente o de otra organización")
	ErrBadItem           = errors.New("ítem inexistente, inactivo o de otra organización")
	ErrBadUnit           = errors.New("unidad inexistente, inactiva o de otra organización")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser positiva y con máximo 3 decimales")
	ErrNoLines           = errors.New("el evento requiere al menos una línea")
	ErrInvalidStatus     = errors.New("estado de movimiento inválido")
	ErrInvalidNodeType   = errors.New("tipo de nodo inválido")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrImmutable         = errors.New("el evento ya no está en borrador")
	ErrNodeInUse         = errors.New("el nodo está referenciado por movimientos")
	ErrHasChildren       = errors.New("la ubicación tiene ubicaciones hijas")
)

// Kind agrupa los errores de dominio según cómo deben exponerse al cliente.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindReferential
	KindConflict
	KindNotFound
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindReferential:
		return "referential"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// KindOf clasifica err. Lo que no es un error de dominio conocido es KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrBadFromNode), errors.Is(err, ErrBadToNode),
		errors.Is(err, ErrBadItem), errors.Is(err, ErrBadUnit):
		return KindReferential
	case errors.Is(err, ErrSameNode), errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrNoLines), errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidNodeType), errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrImmutable), errors.Is(err, ErrNodeInUse),
		errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrHasChildren), errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	default:
		return KindInternal
	}
}

// LineError indica qué línea de un lote falló la validación.
type LineError struct {
	Index int // posición en el lote, base 0
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("línea %d: %v", e.Index+1, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
