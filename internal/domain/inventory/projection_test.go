package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func line(from, to, item, qty string) *entity.MovementLine {
	return &entity.MovementLine{FromNodeID: from, ToNodeID: to, ItemID: item, Quantity: decimal.RequireFromString(qty)}
}

func key(node, item string) inventory.BalanceKey {
	return inventory.BalanceKey{NodeID: node, ItemID: item}
}

func TestAggregate_EntradaYSalidaExterna(t *testing.T) {
	lines := []*entity.MovementLine{
		line("EXT", "W1", "X", "100"),
		line("W1", "EXT", "X", "30"),
	}
	got := inventory.Aggregate(lines, inventory.PostingFilter{})

	require.Len(t, got, 2)
	assert.True(t, got[key("W1", "X")].Equal(decimal.NewFromInt(70)))
	assert.True(t, got[key("EXT", "X")].Equal(decimal.NewFromInt(-70)))
}

func TestAggregate_OmiteSaldosEnCero(t *testing.T) {
	lines := []*entity.MovementLine{
		line("A", "B", "X", "5"),
		line("B", "A", "X", "5"),
	}
	assert.Empty(t, inventory.Aggregate(lines, inventory.PostingFilter{}))
}

func TestAggregate_ConservacionEnMovimientosInternos(t *testing.T) {
	lines := []*entity.MovementLine{
		line("A", "B", "X", "10.5"),
		line("B", "C", "X", "4.25"),
		line("C", "A", "Y", "1.125"),
	}
	sum := decimal.Zero
	for _, v := range inventory.Aggregate(lines, inventory.PostingFilter{}) {
		sum = sum.Add(v)
	}
	assert.True(t, sum.IsZero(), "la suma de todos los saldos debe ser cero")
}

func TestAggregate_FiltraPorNodoEItem(t *testing.T) {
	lines := []*entity.MovementLine{
		line("A", "B", "X", "3"),
		line("A", "B", "Y", "7"),
	}
	got := inventory.Aggregate(lines, inventory.NewPostingFilter([]string{"B"}, []string{"Y"}))

	require.Len(t, got, 1)
	assert.True(t, got[key("B", "Y")].Equal(decimal.NewFromInt(7)))
}

func TestValidateQuantity(t *testing.T) {
	ok := []string{"1", "0.001", "12.5", "999999999999999.999"}
	for _, q := range ok {
		assert.NoError(t, inventory.ValidateQuantity(decimal.RequireFromString(q)), q)
	}
	bad := []string{"0", "-1", "0.0001", "1.2345", "1000000000000000"}
	for _, q := range bad {
		assert.ErrorIs(t, inventory.ValidateQuantity(decimal.RequireFromString(q)), domain.ErrInvalidQuantity, q)
	}
}

func TestSortBalances(t *testing.T) {
	rows := []*entity.BalanceRow{
		{NodeID: "v", NodeType: entity.NodeTypeVirtual, NodeName: "External", ItemCode: "A"},
		{NodeID: "w2", NodeType: entity.NodeTypeWarehouse, NodeName: "Ñuñoa", ItemCode: "A"},
		{NodeID: "w1", NodeType: entity.NodeTypeWarehouse, NodeName: "Armenia", ItemCode: "B"},
		{NodeID: "w1", NodeType: entity.NodeTypeWarehouse, NodeName: "Armenia", ItemCode: "A"},
		{NodeID: "w3", NodeType: entity.NodeTypeWarehouse, NodeName: "Nariño", ItemCode: "A"},
		{NodeID: "c1", NodeType: entity.NodeTypeCustomer, NodeName: "Zapatería", ItemCode: "A"},
	}
	inventory.SortBalances(rows)

	var got []string
	for _, r := range rows {
		got = append(got, r.NodeName+"/"+r.ItemCode)
	}
	assert.Equal(t, []string{"Zapatería/A", "External/A", "Armenia/A", "Armenia/B", "Nariño/A", "Ñuñoa/A"}, got)
}
