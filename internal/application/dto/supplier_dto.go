package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor. kind vacío = SUPPLIER_EXTERNAL.
type CreateSupplierRequest struct {
	Kind   string `json:"kind,omitempty" validate:"omitempty,oneof=SUPPLIER_EXTERNAL SUPPLIER_INTERNAL"`
	Name   string `json:"name" validate:"required,min=1,max=200"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  string `json:"phone,omitempty" validate:"max=50"`
	Active *bool  `json:"active,omitempty"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Kind   *string `json:"kind" validate:"omitempty,oneof=SUPPLIER_EXTERNAL SUPPLIER_INTERNAL"`
	Name   *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Phone  *string `json:"phone" validate:"omitempty,max=50"`
	Active *bool   `json:"active"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	NodeID         string    `json:"node_id"`
	Kind           string    `json:"kind"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
