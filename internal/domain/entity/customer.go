package entity

import "time"

// Customer representa un cliente de la organización.
type Customer struct {
	ID             string
	OrganizationID string
	Name           string
	TaxID          string // NIT o Cédula (Colombia)
	Email          string
	Phone          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *Customer) AsNode() *Node {
	meta := NodeMeta{Kind: string(NodeTypeCustomer), Email: c.Email, Phone: c.Phone}
	return newSourceNode(c.OrganizationID, CustomerRef(c.ID), c.TaxID, c.Name, false, meta)
}
