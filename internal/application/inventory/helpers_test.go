package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

const (
	testOrgID  = "00000000-0000-0000-0000-0000000000a1"
	otherOrgID = "00000000-0000-0000-0000-0000000000b2"
	testUserID = "00000000-0000-0000-0000-000000000001"
)

// fixture organización con una unidad, dos ítems, dos bodegas y los nodos virtuales.
type fixture struct {
	store     *memory.Store
	repos     ports.Repositories
	registry  *inventory.NodeRegistry
	movements *inventory.MovementUseCase
	balances  *inventory.BalanceUseCase

	unit         *entity.Unit
	inactiveUnit *entity.Unit
	item         *entity.Item
	inactiveItem *entity.Item
	foreignItem  *entity.Item
	w1, w2       *entity.Node
	external     *entity.Node
	adjustment   *entity.Node
	foreignNode  *entity.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	log := logger.Nop()

	f := &fixture{
		store:     store,
		repos:     repos,
		registry:  inventory.NewNodeRegistry(store, repos, log),
		movements: inventory.NewMovementUseCase(store, repos, inventory.DefaultLedgerConfig(), nil, log),
		balances:  inventory.NewBalanceUseCase(repos, nil),
	}

	f.unit = &entity.Unit{OrganizationID: testOrgID, Code: "UND", Name: "Unidad", Active: true}
	f.inactiveUnit = &entity.Unit{OrganizationID: testOrgID, Code: "CAJA", Name: "Caja", Active: false}
	require.NoError(t, repos.Units.Create(ctx, f.unit))
	require.NoError(t, repos.Units.Create(ctx, f.inactiveUnit))

	f.item = &entity.Item{OrganizationID: testOrgID, Code: "TOR-01", Name: "Tornillo", UnitID: f.unit.ID, Active: true}
	f.inactiveItem = &entity.Item{OrganizationID: testOrgID, Code: "TOR-99", Name: "Descontinuado", UnitID: f.unit.ID, Active: false}
	f.foreignItem = &entity.Item{OrganizationID: otherOrgID, Code: "X", Name: "Ajeno", Active: true}
	for _, it := range []*entity.Item{f.item, f.inactiveItem, f.foreignItem} {
		require.NoError(t, repos.Items.Create(ctx, it))
	}

	var err error
	f.w1, err = f.registry.UpsertRefNode(ctx, &entity.Warehouse{ID: uuid.NewString(), OrganizationID: testOrgID, Code: "W1", Name: "Bodega Uno"})
	require.NoError(t, err)
	f.w2, err = f.registry.UpsertRefNode(ctx, &entity.Warehouse{ID: uuid.NewString(), OrganizationID: testOrgID, Code: "W2", Name: "Bodega Dos"})
	require.NoError(t, err)
	f.foreignNode, err = f.registry.UpsertRefNode(ctx, &entity.Warehouse{ID: uuid.NewString(), OrganizationID: otherOrgID, Name: "Ajena"})
	require.NoError(t, err)

	virtual, err := f.registry.BootstrapVirtualNodes(ctx, testOrgID)
	require.NoError(t, err)
	require.Len(t, virtual, 2)
	f.external, f.adjustment = virtual[0], virtual[1]
	return f
}

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fixture) move(from, to *entity.Node, q string) inventory.LineInput {
	return inventory.LineInput{ItemID: f.item.ID, FromNodeID: from.ID, ToNodeID: to.ID, Quantity: qty(q)}
}

func (f *fixture) create(t *testing.T, status string, lines ...inventory.LineInput) *inventory.EventWithLines {
	t.Helper()
	out, err := f.movements.CreateEvent(context.Background(), inventory.CreateEventInput{
		OrganizationID: testOrgID,
		CreatedBy:      testUserID,
		Status:         status,
		Lines:          lines,
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) balanceOf(t *testing.T, node *entity.Node) decimal.Decimal {
	t.Helper()
	rows, err := f.balances.GetBalances(context.Background(), testOrgID, inventory.BalanceQuery{})
	require.NoError(t, err)
	for _, r := range rows {
		if r.NodeID == node.ID && r.ItemID == f.item.ID {
			return r.Quantity
		}
	}
	return decimal.Zero
}
