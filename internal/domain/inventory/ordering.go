package inventory

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func newCollator() *collate.Collator {
	return collate.New(language.Spanish, collate.IgnoreCase)
}

// SortBalances ordena por tipo de nodo, nombre de nodo y código de ítem.
// El tipo se compara como texto (ASSET, CUSTOMER, ..., WAREHOUSE); los nombres se comparan con reglas de ordenación en español (tildes, ñ).
func SortBalances(rows []*entity.BalanceRow) {
	c := newCollator()
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.NodeType != b.NodeType {
			return a.NodeType < b.NodeType
		}
		if r := c.CompareString(a.NodeName, b.NodeName); r != 0 {
			return r < 0
		}
		if a.NodeID != b.NodeID {
			return a.NodeID < b.NodeID
		}
		return c.CompareString(a.ItemCode, b.ItemCode) < 0
	})
}

// SortNodes ordena por tipo (como texto) y nombre.
func SortNodes(nodes []*entity.Node) {
	c := newCollator()
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return c.CompareString(a.Name, b.Name) < 0
	})
}
