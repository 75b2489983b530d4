package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	ParentID string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
	Code     string `json:"code" validate:"max=64"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
	Code     *string `json:"code" validate:"omitempty,max=64"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	NodeID         string    `json:"node_id"`
	ParentID       string    `json:"parent_id,omitempty"`
	Code           string    `json:"code,omitempty"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
