package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementLineRequest línea de un movimiento. unit_id vacío = unidad del ítem.
type MovementLineRequest struct {
	ItemID     string          `json:"item_id" validate:"required"`
	UnitID     string          `json:"unit_id,omitempty"`
	FromNodeID string          `json:"from_node_id" validate:"required"`
	ToNodeID   string          `json:"to_node_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CreateMovementRequest body para POST /api/inventory/movements.
// Admite lines[] o, para una sola línea, los campos item_id/unit_id/from_node_id/to_node_id/quantity en la raíz.
type CreateMovementRequest struct {
	EventType     string                `json:"event_type" validate:"max=32"`
	Status        string                `json:"status,omitempty" validate:"omitempty,oneof=DRAFT POSTED CANCELLED draft posted cancelled"`
	OccurredAt    *time.Time            `json:"occurred_at,omitempty"`
	ReferenceType string                `json:"reference_type,omitempty" validate:"max=64"`
	ReferenceID   string                `json:"reference_id,omitempty" validate:"max=64"`
	Note          string                `json:"note,omitempty"`
	Lines         []MovementLineRequest `json:"lines,omitempty" validate:"omitempty,dive"`

	ItemID     string           `json:"item_id,omitempty"`
	UnitID     string           `json:"unit_id,omitempty"`
	FromNodeID string           `json:"from_node_id,omitempty"`
	ToNodeID   string           `json:"to_node_id,omitempty"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
}

// LineRequests devuelve lines[] o la línea única de la raíz.
func (r CreateMovementRequest) LineRequests() []MovementLineRequest {
	if len(r.Lines) > 0 {
		return r.Lines
	}
	if r.ItemID == "" && r.FromNodeID == "" && r.ToNodeID == "" && r.Quantity == nil {
		return nil
	}
	l := MovementLineRequest{ItemID: r.ItemID, UnitID: r.UnitID, FromNodeID: r.FromNodeID, ToNodeID: r.ToNodeID}
	if r.Quantity != nil {
		l.Quantity = *r.Quantity
	}
	return []MovementLineRequest{l}
}

// UpdateMovementRequest body para PUT /api/inventory/movements/:id.
// event_type, status y occurred_at ausentes conservan el valor actual; reference_* y note se reemplazan.
type UpdateMovementRequest struct {
	EventType     *string    `json:"event_type,omitempty" validate:"omitempty,max=32"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=DRAFT POSTED CANCELLED draft posted cancelled"`
	OccurredAt    *time.Time `json:"occurred_at,omitempty"`
	ReferenceType string     `json:"reference_type,omitempty" validate:"max=64"`
	ReferenceID   string     `json:"reference_id,omitempty" validate:"max=64"`
	Note          string     `json:"note,omitempty"`

	MovementLineRequest
}

// MovementEventResponse evento con sus líneas.
type MovementEventResponse struct {
	ID             string                 `json:"id"`
	OrganizationID string                 `json:"organization_id"`
	EventType      string                 `json:"event_type"`
	Status         string                 `json:"status"`
	OccurredAt     time.Time              `json:"occurred_at"`
	ReferenceType  string                 `json:"reference_type,omitempty"`
	ReferenceID    string                 `json:"reference_id,omitempty"`
	Note           string                 `json:"note,omitempty"`
	CreatedBy      string                 `json:"created_by,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	Lines          []MovementLineResponse `json:"lines"`
}

// MovementLineResponse línea en respuestas.
type MovementLineResponse struct {
	ID         string          `json:"id"`
	EventID    string          `json:"event_id"`
	LineNo     int             `json:"line_no"`
	ItemID     string          `json:"item_id"`
	UnitID     string          `json:"unit_id"`
	FromNodeID string          `json:"from_node_id"`
	ToNodeID   string          `json:"to_node_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// MovementListItem línea del listado con datos del evento y etiquetas.
type MovementListItem struct {
	MovementLineResponse
	EventType     string    `json:"event_type"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
	ReferenceType string    `json:"reference_type,omitempty"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	Note          string    `json:"note,omitempty"`
	FromNodeName  string    `json:"from_node_name"`
	FromNodeType  string    `json:"from_node_type"`
	ToNodeName    string    `json:"to_node_name"`
	ToNodeType    string    `json:"to_node_type"`
	ItemCode      string    `json:"item_code"`
	ItemName      string    `json:"item_name"`
	UnitCode      string    `json:"unit_code"`
}

// MovementListResponse listado de movimientos recientes.
type MovementListResponse struct {
	Items []MovementListItem `json:"items"`
	Limit int                `json:"limit"`
}
