package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID             string
	OrganizationID string
	LocationID     string // opcional
	Code           string
	Name           string
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AsNode proyecta la bodega al registro de nodos; las bodegas siempre tienen stock.
func (w *Warehouse) AsNode() *Node {
	meta := NodeMeta{Kind: string(NodeTypeWarehouse)}
	if w.LocationID != "" || w.Address != "" {
		meta.Extra = map[string]string{}
		if w.LocationID != "" {
			meta.Extra["location_id"] = w.LocationID
		}
		if w.Address != "" {
			meta.Extra["address"] = w.Address
		}
	}
	return newSourceNode(w.OrganizationID, WarehouseRef(w.ID), w.Code, w.Name, true, meta)
}
