package http

import (
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func toNodeResponse(n *entity.Node) dto.NodeResponse {
	return dto.NodeResponse{
		ID:             n.ID,
		OrganizationID: n.OrganizationID,
		NodeType:       string(n.Type),
		RefTable:       n.RefTable,
		RefID:          n.RefID,
		Code:           n.Code,
		Name:           n.Name,
		IsStocked:      n.IsStocked,
		Meta: dto.NodeMetaDTO{
			Kind:   n.Meta.Kind,
			Active: n.Meta.Active,
			Email:  n.Meta.Email,
			Phone:  n.Meta.Phone,
			Extra:  n.Meta.Extra,
		},
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNodeListResponse(nodes []*entity.Node) dto.NodeListResponse {
	out := dto.NodeListResponse{Items: make([]dto.NodeResponse, 0, len(nodes)), Total: len(nodes)}
	for _, n := range nodes {
		out.Items = append(out.Items, toNodeResponse(n))
	}
	return out
}

func toNodeMeta(m *dto.NodeMetaDTO) entity.NodeMeta {
	if m == nil {
		return entity.NodeMeta{}
	}
	return entity.NodeMeta{Kind: m.Kind, Active: m.Active, Email: m.Email, Phone: m.Phone, Extra: m.Extra}
}

func toLineInputs(lines []dto.MovementLineRequest) []inventory.LineInput {
	out := make([]inventory.LineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, toLineInput(l))
	}
	return out
}

func toLineInput(l dto.MovementLineRequest) inventory.LineInput {
	return inventory.LineInput{
		ItemID:     l.ItemID,
		UnitID:     l.UnitID,
		FromNodeID: l.FromNodeID,
		ToNodeID:   l.ToNodeID,
		Quantity:   l.Quantity,
	}
}

func toLineResponse(l *entity.MovementLine) dto.MovementLineResponse {
	return dto.MovementLineResponse{
		ID:         l.ID,
		EventID:    l.EventID,
		LineNo:     l.LineNo,
		ItemID:     l.ItemID,
		UnitID:     l.UnitID,
		FromNodeID: l.FromNodeID,
		ToNodeID:   l.ToNodeID,
		Quantity:   l.Quantity,
	}
}

func toEventResponse(ev *inventory.EventWithLines) dto.MovementEventResponse {
	e := ev.Event
	out := dto.MovementEventResponse{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		EventType:      e.EventType,
		Status:         string(e.Status),
		OccurredAt:     e.OccurredAt,
		ReferenceType:  e.ReferenceType,
		ReferenceID:    e.ReferenceID,
		Note:           e.Note,
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		Lines:          make([]dto.MovementLineResponse, 0, len(ev.Lines)),
	}
	for _, l := range ev.Lines {
		out.Lines = append(out.Lines, toLineResponse(l))
	}
	return out
}

func toMovementListItem(v *entity.MovementView) dto.MovementListItem {
	return dto.MovementListItem{
		MovementLineResponse: toLineResponse(&v.Line),
		EventType:            v.EventType,
		Status:               string(v.Status),
		OccurredAt:           v.OccurredAt,
		ReferenceType:        v.ReferenceType,
		ReferenceID:          v.ReferenceID,
		Note:                 v.Note,
		FromNodeName:         v.FromNodeName,
		FromNodeType:         string(v.FromNodeType),
		ToNodeName:           v.ToNodeName,
		ToNodeType:           string(v.ToNodeType),
		ItemCode:             v.ItemCode,
		ItemName:             v.ItemName,
		UnitCode:             v.UnitCode,
	}
}

func toBalanceResponse(r *entity.BalanceRow) dto.BalanceResponse {
	return dto.BalanceResponse{
		NodeID:   r.NodeID,
		NodeType: string(r.NodeType),
		NodeCode: r.NodeCode,
		NodeName: r.NodeName,
		ItemID:   r.ItemID,
		ItemCode: r.ItemCode,
		ItemName: r.ItemName,
		UnitCode: r.UnitCode,
		Quantity: r.Quantity,
	}
}
