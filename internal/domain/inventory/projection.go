// Package inventory contiene los algoritmos puros del libro de movimientos:
// expansión de líneas en asientos por nodo y agregación de saldos.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Posting efecto de una línea sobre un nodo: +cantidad en destino, -cantidad en origen.
type Posting struct {
	NodeID string
	ItemID string
	Delta  decimal.Decimal
}

// BalanceKey agrupa saldos por nodo e ítem.
type BalanceKey struct {
	NodeID string
	ItemID string
}

// Expand devuelve los dos asientos de una línea (destino primero).
func Expand(l *entity.MovementLine) [2]Posting {
	return [2]Posting{
		{NodeID: l.ToNodeID, ItemID: l.ItemID, Delta: l.Quantity},
		{NodeID: l.FromNodeID, ItemID: l.ItemID, Delta: l.Quantity.Neg()},
	}
}

// PostingFilter restringe los asientos por nodo o ítem; conjuntos vacíos no filtran.
type PostingFilter struct {
	NodeIDs map[string]struct{}
	ItemIDs map[string]struct{}
}

// NewPostingFilter construye el filtro desde listas de IDs.
func NewPostingFilter(nodeIDs, itemIDs []string) PostingFilter {
	return PostingFilter{NodeIDs: toSet(nodeIDs), ItemIDs: toSet(itemIDs)}
}

func (f PostingFilter) match(p Posting) bool {
	if len(f.NodeIDs) > 0 {
		if _, ok := f.NodeIDs[p.NodeID]; !ok {
			return false
		}
	}
	if len(f.ItemIDs) > 0 {
		if _, ok := f.ItemIDs[p.ItemID]; !ok {
			return false
		}
	}
	return true
}

// Aggregate suma los asientos de las líneas por (nodo, ítem) y descarta los grupos con saldo cero.
// Las líneas deben venir ya filtradas por estado y fecha del evento.
func Aggregate(lines []*entity.MovementLine, f PostingFilter) map[BalanceKey]decimal.Decimal {
	sums := make(map[BalanceKey]decimal.Decimal)
	for _, l := range lines {
		for _, p := range Expand(l) {
			if !f.match(p) {
				continue
			}
			k := BalanceKey{NodeID: p.NodeID, ItemID: p.ItemID}
			sums[k] = sums[k].Add(p.Delta)
		}
	}
	for k, v := range sums {
		if v.IsZero() {
			delete(sums, k)
		}
	}
	return sums
}

// DropZero elimina filas con saldo neto cero conservando el orden.
func DropZero(rows []*entity.BalanceRow) []*entity.BalanceRow {
	out := rows[:0]
	for _, r := range rows {
		if !r.Quantity.IsZero() {
			out = append(out, r)
		}
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}
