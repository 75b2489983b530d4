package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Code       string `json:"code" validate:"max=64"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Address    string `json:"address"`
	LocationID string `json:"location_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Code       *string `json:"code" validate:"omitempty,max=64"`
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address    *string `json:"address"`
	LocationID *string `json:"location_id" validate:"omitempty,uuid"`
}

// WarehouseResponse salida de una bodega. NodeID es su nodo en el registro.
type WarehouseResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	NodeID         string    `json:"node_id"`
	LocationID     string    `json:"location_id,omitempty"`
	Code           string    `json:"code,omitempty"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
