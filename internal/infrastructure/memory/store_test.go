package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
)

const org = "00000000-0000-0000-0000-0000000000aa"

func TestStore_RunHaceRollbackSiFalla(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("boom")

	err := store.Run(ctx, func(r ports.Repositories) error {
		n := &entity.Node{OrganizationID: org, Type: entity.NodeTypeVirtual, RefTable: entity.RefTableVirtual, RefID: "EXTERNAL", Name: "External"}
		require.NoError(t, r.Nodes.Upsert(ctx, n))
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := store.Repositories().Nodes.ListByOrganization(ctx, org, nil)
	require.NoError(t, err)
	assert.Empty(t, list, "los cambios de una tx fallida no deben quedar visibles")
}

func TestNodeRepo_UpsertEsIdempotente(t *testing.T) {
	ctx := context.Background()
	nodes := memory.NewStore().Repositories().Nodes

	first := &entity.Node{OrganizationID: org, Type: entity.NodeTypeWarehouse, RefTable: "warehouses", RefID: "w1", Name: "Principal"}
	require.NoError(t, nodes.Upsert(ctx, first))
	second := &entity.Node{OrganizationID: org, Type: entity.NodeTypeWarehouse, RefTable: "warehouses", RefID: "w1", Name: "Principal Norte", IsStocked: true}
	require.NoError(t, nodes.Upsert(ctx, second))

	assert.Equal(t, first.ID, second.ID)
	list, _ := nodes.ListByOrganization(ctx, org, nil)
	require.Len(t, list, 1)
	assert.Equal(t, "Principal Norte", list[0].Name, "gana la última escritura")
	assert.True(t, list[0].IsStocked)

	dup := &entity.Node{OrganizationID: org, Type: entity.NodeTypeWarehouse, RefTable: "warehouses", RefID: "w1", Name: "x"}
	assert.ErrorIs(t, nodes.Create(ctx, dup), domain.ErrDuplicate)
}

func TestNodeRepo_DeleteNodoConMovimientos(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	a := &entity.Node{OrganizationID: org, Type: entity.NodeTypeVirtual, RefTable: "virtual", RefID: "A", Name: "A"}
	b := &entity.Node{OrganizationID: org, Type: entity.NodeTypeVirtual, RefTable: "virtual", RefID: "B", Name: "B"}
	require.NoError(t, repos.Nodes.Upsert(ctx, a))
	require.NoError(t, repos.Nodes.Upsert(ctx, b))

	ev := &entity.MovementEvent{OrganizationID: org, EventType: "MOVE", Status: entity.StatusPosted}
	require.NoError(t, repos.Movements.CreateEvent(ctx, ev))
	require.NoError(t, repos.Movements.CreateLines(ctx, []*entity.MovementLine{{
		EventID: ev.ID, OrganizationID: org, LineNo: 1, ItemID: "i", UnitID: "u",
		FromNodeID: a.ID, ToNodeID: b.ID, Quantity: decimal.NewFromInt(1),
	}}))

	assert.ErrorIs(t, repos.Nodes.Delete(ctx, org, a.ID), domain.ErrNodeInUse)

	require.NoError(t, repos.Movements.DeleteEvent(ctx, org, ev.ID))
	assert.NoError(t, repos.Nodes.Delete(ctx, org, a.ID))
}

func TestMovementRepo_UpdateDraftEventRechazaContabilizados(t *testing.T) {
	ctx := context.Background()
	movs := memory.NewStore().Repositories().Movements

	ev := &entity.MovementEvent{OrganizationID: org, EventType: "MOVE", Status: entity.StatusPosted}
	require.NoError(t, movs.CreateEvent(ctx, ev))

	ev.Note = "cambio"
	assert.ErrorIs(t, movs.UpdateDraftEvent(ctx, ev), domain.ErrImmutable)

	stored, err := movs.GetEvent(ctx, org, ev.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Note)
}

func TestMovementRepo_DeleteLineSoloEnBorrador(t *testing.T) {
	ctx := context.Background()
	movs := memory.NewStore().Repositories().Movements

	ev := &entity.MovementEvent{OrganizationID: org, EventType: "MOVE", Status: entity.StatusDraft}
	require.NoError(t, movs.CreateEvent(ctx, ev))
	line := &entity.MovementLine{
		EventID: ev.ID, OrganizationID: org, LineNo: 1, ItemID: "i", UnitID: "u",
		FromNodeID: "a", ToNodeID: "b", Quantity: decimal.NewFromInt(1),
	}
	require.NoError(t, movs.CreateLines(ctx, []*entity.MovementLine{line}))

	// Otra escritura contabiliza el evento antes del borrado.
	ev.Status = entity.StatusPosted
	require.NoError(t, movs.UpdateDraftEvent(ctx, ev))

	assert.ErrorIs(t, movs.DeleteLine(ctx, org, line.ID), domain.ErrImmutable)
	n, err := movs.CountLines(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "la línea de un evento contabilizado se conserva")

	assert.ErrorIs(t, movs.DeleteLine(ctx, org, "no-existe"), domain.ErrNotFound)
	assert.ErrorIs(t, movs.DeleteLine(ctx, "otra-org", line.ID), domain.ErrNotFound)
}
