package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

const seedOrg = "00000000-0000-0000-0000-0000000000c3"

func TestSeedDemo_CargaSaldoInicial(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()

	res, err := seedDemo(ctx, store, repos, logger.Nop(), seedOrg)
	require.NoError(t, err)
	assert.Equal(t, len(demoItems), res.Lines)

	rows, err := inventory.NewBalanceUseCase(repos, nil).GetBalances(ctx, seedOrg, inventory.BalanceQuery{
		NodeIDs: []string{res.WarehouseNodeID},
	})
	require.NoError(t, err)
	require.Len(t, rows, len(demoItems))
	got := map[string]string{}
	for _, r := range rows {
		got[r.ItemCode] = r.Quantity.String()
	}
	assert.Equal(t, "500", got["TOR-01"])
	assert.Equal(t, "1250.5", got["ARE-01"])
}

func TestSeedDemo_SegundaVezFalla(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	_, err := seedDemo(ctx, store, store.Repositories(), logger.Nop(), seedOrg)
	require.NoError(t, err)
	_, err = seedDemo(ctx, store, store.Repositories(), logger.Nop(), seedOrg)
	assert.ErrorIs(t, err, errAlreadySeeded)
}

func TestParseOrg(t *testing.T) {
	id, err := parseOrg("00000000-0000-0000-0000-0000000000C3")
	require.NoError(t, err)
	assert.Equal(t, seedOrg, id)

	_, err = parseOrg("acme")
	assert.Error(t, err)
}
