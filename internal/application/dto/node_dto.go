package dto

import "time"

// NodeMetaDTO metadatos tipados del nodo.
type NodeMetaDTO struct {
	Kind   string            `json:"kind,omitempty"`
	Active *bool             `json:"active,omitempty"`
	Email  string            `json:"email,omitempty" validate:"omitempty,email"`
	Phone  string            `json:"phone,omitempty"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// CreateNodeRequest body para POST /api/nodes (nodo virtual).
type CreateNodeRequest struct {
	Key       string       `json:"key" validate:"required,max=64"`
	Name      string       `json:"name" validate:"required,min=1,max=200"`
	Code      string       `json:"code" validate:"max=64"`
	IsStocked bool         `json:"is_stocked"`
	Meta      *NodeMetaDTO `json:"meta,omitempty"`
}

// NodeResponse nodo en respuestas.
type NodeResponse struct {
	ID             string      `json:"id"`
	OrganizationID string      `json:"organization_id"`
	NodeType       string      `json:"node_type"`
	RefTable       string      `json:"ref_table"`
	RefID          string      `json:"ref_id"`
	Code           string      `json:"code,omitempty"`
	Name           string      `json:"name"`
	IsStocked      bool        `json:"is_stocked"`
	Meta           NodeMetaDTO `json:"meta"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// NodeListResponse listado de nodos.
type NodeListResponse struct {
	Items []NodeResponse `json:"items"`
	Total int            `json:"total"`
}
