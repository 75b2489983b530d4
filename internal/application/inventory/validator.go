package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// LineInput línea propuesta por el cliente. UnitID vacío toma la unidad por defecto del ítem.
type LineInput struct {
	ItemID     string
	UnitID     string
	FromNodeID string
	ToNodeID   string
	Quantity   decimal.Decimal
}

// ValidLine línea con IDs confirmados y unidad resuelta.
type ValidLine struct {
	ItemID     string
	UnitID     string
	FromNodeID string
	ToNodeID   string
	Quantity   decimal.Decimal
}

// LineValidator comprueba las referencias de un lote de líneas contra los repositorios de la tx.
// No modifica nada; el libro lo invoca antes de cada creación o edición.
//
// Orden de las comprobaciones (el primer fallo gana):
//  1. origen == destino en cualquier línea del lote (ErrSameNode)
//  2. cantidad positiva con máximo 3 decimales (ErrInvalidQuantity)
//  3. nodo origen, nodo destino, ítem y unidad de cada línea, en ese orden
type LineValidator struct{}

// Validate devuelve las líneas normalizadas o un *domain.LineError con el índice que falló.
func (LineValidator) Validate(ctx context.Context, r ports.Repositories, orgID string, lines []LineInput) ([]ValidLine, error) {
	if len(lines) == 0 {
		return nil, domain.ErrNoLines
	}
	for i, l := range lines {
		if l.FromNodeID != "" && l.FromNodeID == l.ToNodeID {
			return nil, &domain.LineError{Index: i, Err: domain.ErrSameNode}
		}
	}
	for i, l := range lines {
		if err := inventory.ValidateQuantity(l.Quantity); err != nil {
			return nil, &domain.LineError{Index: i, Err: err}
		}
	}

	nodeIDs := make([]string, 0, 2*len(lines))
	itemIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		nodeIDs = append(nodeIDs, l.FromNodeID, l.ToNodeID)
		itemIDs = append(itemIDs, l.ItemID)
	}
	nodes, err := r.Nodes.GetByIDs(ctx, orgID, lookupIDs(nodeIDs))
	if err != nil {
		return nil, err
	}
	items, err := r.Items.GetByIDs(ctx, orgID, lookupIDs(itemIDs))
	if err != nil {
		return nil, err
	}

	unitIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		unitIDs = append(unitIDs, resolveUnitID(l, items))
	}
	units, err := r.Units.GetByIDs(ctx, orgID, lookupIDs(unitIDs))
	if err != nil {
		return nil, err
	}

	out := make([]ValidLine, len(lines))
	for i, l := range lines {
		if !usableNode(nodes[l.FromNodeID]) {
			return nil, &domain.LineError{Index: i, Err: domain.ErrBadFromNode}
		}
		if !usableNode(nodes[l.ToNodeID]) {
			return nil, &domain.LineError{Index: i, Err: domain.ErrBadToNode}
		}
		item := items[l.ItemID]
		if item == nil || !item.Active {
			return nil, &domain.LineError{Index: i, Err: domain.ErrBadItem}
		}
		unitID := unitIDs[i]
		unit := units[unitID]
		if unit == nil || !unit.Active {
			return nil, &domain.LineError{Index: i, Err: domain.ErrBadUnit}
		}
		out[i] = ValidLine{
			ItemID:     item.ID,
			UnitID:     unit.ID,
			FromNodeID: l.FromNodeID,
			ToNodeID:   l.ToNodeID,
			Quantity:   l.Quantity,
		}
	}
	return out, nil
}

func resolveUnitID(l LineInput, items map[string]*entity.Item) string {
	if l.UnitID != "" {
		return l.UnitID
	}
	if it := items[l.ItemID]; it != nil {
		return it.UnitID
	}
	return ""
}

// usableNode los repositorios ya filtran por organización; un nodo marcado inactivo no admite movimientos.
func usableNode(n *entity.Node) bool {
	return n != nil && !n.Meta.Inactive()
}

// lookupIDs deduplica y descarta IDs que no son UUID (se tratan como inexistentes).
func lookupIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}
