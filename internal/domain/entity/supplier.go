package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// SupplierKind distingue proveedores externos de los internos (otra sede de la organización).
type SupplierKind string

const (
	SupplierExternal SupplierKind = "SUPPLIER_EXTERNAL"
	SupplierInternal SupplierKind = "SUPPLIER_INTERNAL"
)

// ParseSupplierKind valida el tipo; vacío equivale a externo.
func ParseSupplierKind(s string) (SupplierKind, error) {
	switch k := SupplierKind(strings.ToUpper(strings.TrimSpace(s))); k {
	case "":
		return SupplierExternal, nil
	case SupplierExternal, SupplierInternal:
		return k, nil
	}
	return "", domain.ErrInvalidInput
}

// Supplier proveedor de mercancía.
type Supplier struct {
	ID             string
	OrganizationID string
	Kind           SupplierKind
	Name           string
	Email          string
	Phone          string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AsNode los proveedores no mantienen stock propio; el código del nodo es el tipo de proveedor.
func (s *Supplier) AsNode() *Node {
	meta := NodeMeta{
		Kind:   string(s.Kind),
		Active: boolPtr(s.Active),
		Email:  s.Email,
		Phone:  s.Phone,
	}
	return newSourceNode(s.OrganizationID, SupplierRef(s.ID), string(s.Kind), s.Name, false, meta)
}
