package entity

import "time"

// Location ubicación física jerárquica (zona, pasillo, estante).
type Location struct {
	ID             string
	OrganizationID string
	ParentID       string // vacío = raíz
	Code           string
	Name           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (l *Location) AsNode() *Node {
	meta := NodeMeta{Kind: string(NodeTypeLocation)}
	if l.ParentID != "" {
		meta.Extra = map[string]string{"parent_id": l.ParentID}
	}
	return newSourceNode(l.OrganizationID, LocationRef(l.ID), l.Code, l.Name, true, meta)
}
