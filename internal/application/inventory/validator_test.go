package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func TestLineValidator_Rechazos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		line func() inventory.LineInput
		want error
	}{
		{"mismo nodo", func() inventory.LineInput { return f.move(f.w1, f.w1, "1") }, domain.ErrSameNode},
		{"cantidad cero", func() inventory.LineInput { return f.move(f.w1, f.w2, "0") }, domain.ErrInvalidQuantity},
		{"cuatro decimales", func() inventory.LineInput { return f.move(f.w1, f.w2, "1.0001") }, domain.ErrInvalidQuantity},
		{"origen inexistente", func() inventory.LineInput {
			l := f.move(f.w1, f.w2, "1")
			l.FromNodeID = uuid.NewString()
			return l
		}, domain.ErrBadFromNode},
		{"origen no es uuid", func() inventory.LineInput {
			l := f.move(f.w1, f.w2, "1")
			l.FromNodeID = "bodega-1"
			return l
		}, domain.ErrBadFromNode},
		{"destino de otra organización", func() inventory.LineInput { return f.move(f.w1, f.foreignNode, "1") }, domain.ErrBadToNode},
		{"ítem inactivo", func() inventory.LineInput {
			l := f.move(f.w1, f.w2, "1")
			l.ItemID = f.inactiveItem.ID
			return l
		}, domain.ErrBadItem},
		{"ítem de otra organización", func() inventory.LineInput {
			l := f.move(f.w1, f.w2, "1")
			l.ItemID = f.foreignItem.ID
			return l
		}, domain.ErrBadItem},
		{"unidad inactiva", func() inventory.LineInput {
			l := f.move(f.w1, f.w2, "1")
			l.UnitID = f.inactiveUnit.ID
			return l
		}, domain.ErrBadUnit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inventory.LineValidator{}.Validate(ctx, f.repos, testOrgID, []inventory.LineInput{tc.line()})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLineValidator_MismoNodoSeDetectaAntesQueReferencias(t *testing.T) {
	f := newFixture(t)
	bad := f.move(f.w1, f.w2, "1")
	bad.ItemID = uuid.NewString()
	same := f.move(f.w2, f.w2, "1")

	_, err := inventory.LineValidator{}.Validate(context.Background(), f.repos, testOrgID, []inventory.LineInput{bad, same})

	var le *domain.LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 1, le.Index)
	assert.ErrorIs(t, err, domain.ErrSameNode)
}

func TestLineValidator_UnidadPorDefectoDelItem(t *testing.T) {
	f := newFixture(t)

	out, err := inventory.LineValidator{}.Validate(context.Background(), f.repos, testOrgID,
		[]inventory.LineInput{f.move(f.external, f.w1, "2.5")})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, f.unit.ID, out[0].UnitID)
}

func TestLineValidator_NodoInactivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	supplier, err := f.registry.UpsertRefNode(ctx, &entity.Supplier{
		ID: uuid.NewString(), OrganizationID: testOrgID, Kind: entity.SupplierExternal, Name: "Proveedor", Active: false,
	})
	require.NoError(t, err)

	_, err = inventory.LineValidator{}.Validate(ctx, f.repos, testOrgID, []inventory.LineInput{f.move(supplier, f.w1, "1")})
	assert.ErrorIs(t, err, domain.ErrBadFromNode)
}

func TestLineValidator_LoteVacio(t *testing.T) {
	f := newFixture(t)
	_, err := inventory.LineValidator{}.Validate(context.Background(), f.repos, testOrgID, nil)
	assert.ErrorIs(t, err, domain.ErrNoLines)
}
