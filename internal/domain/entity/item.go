package entity

import "time"

// Item artículo del catálogo; el libro solo necesita existencia, organización, estado y unidad por defecto.
type Item struct {
	ID             string
	OrganizationID string
	Code           string
	Name           string
	UnitID         string
	Active         bool
	CreatedAt      time.Time
}

// Unit unidad de medida.
type Unit struct {
	ID             string
	OrganizationID string
	Code           string
	Name           string
	Active         bool
	CreatedAt      time.Time
}
