package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// MovementStatus estado de un evento de movimiento.
type MovementStatus string

const (
	StatusDraft     MovementStatus = "DRAFT"
	StatusPosted    MovementStatus = "POSTED"
	StatusCancelled MovementStatus = "CANCELLED"
)

// DefaultEventType tipo de evento cuando el cliente no indica uno.
const DefaultEventType = "MOVE"

// ParseMovementStatus normaliza y valida un estado.
func ParseMovementStatus(s string) (MovementStatus, error) {
	st := MovementStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusDraft, StatusPosted, StatusCancelled:
		return st, nil
	}
	return "", domain.ErrInvalidStatus
}

// Terminal indica que el estado ya no admite cambios.
func (s MovementStatus) Terminal() bool {
	return s == StatusPosted || s == StatusCancelled
}

// CanTransitionTo aplica la máquina de estados DRAFT -> POSTED | CANCELLED.
// Permanecer en DRAFT es válido mientras el evento siga en borrador.
func (s MovementStatus) CanTransitionTo(next MovementStatus) bool {
	if s != StatusDraft {
		return false
	}
	switch next {
	case StatusDraft, StatusPosted, StatusCancelled:
		return true
	}
	return false
}

// MovementEvent cabecera de un movimiento; agrupa 1..N líneas.
type MovementEvent struct {
	ID             string
	OrganizationID string
	EventType      string
	Status         MovementStatus
	OccurredAt     time.Time
	ReferenceType  string
	ReferenceID    string
	Note           string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsMutable solo los borradores se pueden editar o borrar.
func (e *MovementEvent) IsMutable() bool {
	return e.Status == StatusDraft
}

// TransitionTo cambia el estado respetando la máquina de estados.
func (e *MovementEvent) TransitionTo(next MovementStatus) error {
	if e.Status.Terminal() {
		return domain.ErrImmutable
	}
	if !e.Status.CanTransitionTo(next) {
		return domain.ErrInvalidTransition
	}
	e.Status = next
	return nil
}

// MovementLine traslado de una cantidad de un ítem entre dos nodos.
type MovementLine struct {
	ID             string
	EventID        string
	OrganizationID string
	LineNo         int
	ItemID         string
	UnitID         string
	FromNodeID     string
	ToNodeID       string
	Quantity       decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MovementView línea con los datos de su evento y etiquetas de nodos, ítem y unidad.
type MovementView struct {
	Line          MovementLine
	EventType     string
	Status        MovementStatus
	OccurredAt    time.Time
	ReferenceType string
	ReferenceID   string
	Note          string
	FromNodeName  string
	FromNodeType  NodeType
	ToNodeName    string
	ToNodeType    NodeType
	ItemCode      string
	ItemName      string
	UnitCode      string
}
