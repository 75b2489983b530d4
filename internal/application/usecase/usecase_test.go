package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

const (
	orgID      = "00000000-0000-0000-0000-0000000000a1"
	otherOrgID = "00000000-0000-0000-0000-0000000000b2"
)

type env struct {
	ctx        context.Context
	repos      ports.Repositories
	warehouses *usecase.WarehouseUseCase
	locations  *usecase.LocationUseCase
	suppliers  *usecase.SupplierUseCase
	customers  *usecase.CustomerUseCase
	movements  *inventory.MovementUseCase
	registry   *inventory.NodeRegistry
	item       *entity.Item
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	e := &env{
		ctx:        context.Background(),
		repos:      repos,
		warehouses: usecase.NewWarehouseUseCase(store, repos),
		locations:  usecase.NewLocationUseCase(store, repos),
		suppliers:  usecase.NewSupplierUseCase(store, repos),
		customers:  usecase.NewCustomerUseCase(store, repos),
		movements:  inventory.NewMovementUseCase(store, repos, inventory.DefaultLedgerConfig(), nil, logger.Nop()),
		registry:   inventory.NewNodeRegistry(store, repos, logger.Nop()),
	}
	unit := &entity.Unit{OrganizationID: orgID, Code: "UND", Name: "Unidad", Active: true}
	require.NoError(t, repos.Units.Create(e.ctx, unit))
	e.item = &entity.Item{OrganizationID: orgID, Code: "A-1", Name: "Arandela", UnitID: unit.ID, Active: true}
	require.NoError(t, repos.Items.Create(e.ctx, e.item))
	_, err := e.registry.BootstrapVirtualNodes(e.ctx, orgID)
	require.NoError(t, err)
	return e
}

// receive registra una entrada desde EXTERNAL hacia nodeID.
func (e *env) receive(t *testing.T, nodeID string) {
	t.Helper()
	ext, err := e.registry.FindByRef(e.ctx, orgID, entity.VirtualRef(entity.VirtualKeyExternal))
	require.NoError(t, err)
	_, err = e.movements.CreateEvent(e.ctx, inventory.CreateEventInput{
		OrganizationID: orgID,
		Lines: []inventory.LineInput{{
			ItemID: e.item.ID, FromNodeID: ext.ID, ToNodeID: nodeID, Quantity: decimal.NewFromInt(5),
		}},
	})
	require.NoError(t, err)
}

func TestWarehouse_CreateRegistraNodo(t *testing.T) {
	e := newEnv(t)

	w, err := e.warehouses.Create(e.ctx, orgID, dto.CreateWarehouseRequest{Code: "B1", Name: "Bodega Norte", Address: "Calle 1"})
	require.NoError(t, err)
	require.NotEmpty(t, w.NodeID)

	n, err := e.repos.Nodes.GetByID(e.ctx, orgID, w.NodeID)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, entity.NodeTypeWarehouse, n.Type)
	assert.Equal(t, entity.RefTableWarehouses, n.RefTable)
	assert.Equal(t, w.ID, n.RefID)
	assert.Equal(t, "Bodega Norte", n.Name)
	assert.True(t, n.IsStocked)
	assert.Equal(t, "Calle 1", n.Meta.Extra["address"])
}

func TestWarehouse_UpdateFusionaNodo(t *testing.T) {
	e := newEnv(t)
	w, err := e.warehouses.Create(e.ctx, orgID, dto.CreateWarehouseRequest{Name: "Bodega"})
	require.NoError(t, err)

	name := "Bodega Central"
	updated, err := e.warehouses.Update(e.ctx, orgID, w.ID, dto.UpdateWarehouseRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, w.NodeID, updated.NodeID)

	n, err := e.repos.Nodes.GetByID(e.ctx, orgID, w.NodeID)
	require.NoError(t, err)
	assert.Equal(t, "Bodega Central", n.Name)
}

func TestWarehouse_LocationDeOtraOrganizacion(t *testing.T) {
	e := newEnv(t)
	loc, err := e.locations.Create(e.ctx, otherOrgID, dto.CreateLocationRequest{Name: "Zona A"})
	require.NoError(t, err)

	_, err = e.warehouses.Create(e.ctx, orgID, dto.CreateWarehouseRequest{Name: "Bodega", LocationID: loc.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := e.warehouses.List(e.ctx, orgID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestWarehouse_DeleteConMovimientosFalla(t *testing.T) {
	e := newEnv(t)
	w, err := e.warehouses.Create(e.ctx, orgID, dto.CreateWarehouseRequest{Name: "Bodega"})
	require.NoError(t, err)
	e.receive(t, w.NodeID)

	err = e.warehouses.Delete(e.ctx, orgID, w.ID)
	assert.ErrorIs(t, err, domain.ErrNodeInUse)

	still, err := e.warehouses.GetByID(e.ctx, orgID, w.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.Equal(t, w.NodeID, still.NodeID)
}

func TestWarehouse_DeleteSinMovimientosEliminaNodo(t *testing.T) {
	e := newEnv(t)
	w, err := e.warehouses.Create(e.ctx, orgID, dto.CreateWarehouseRequest{Name: "Bodega"})
	require.NoError(t, err)

	require.NoError(t, e.warehouses.Delete(e.ctx, orgID, w.ID))

	n, err := e.repos.Nodes.GetByID(e.ctx, orgID, w.NodeID)
	require.NoError(t, err)
	assert.Nil(t, n)
	assert.ErrorIs(t, e.warehouses.Delete(e.ctx, orgID, w.ID), domain.ErrNotFound)
}

func TestLocation_DeleteConHijasFalla(t *testing.T) {
	e := newEnv(t)
	parent, err := e.locations.Create(e.ctx, orgID, dto.CreateLocationRequest{Name: "Zona A"})
	require.NoError(t, err)
	_, err = e.locations.Create(e.ctx, orgID, dto.CreateLocationRequest{Name: "Pasillo 1", ParentID: parent.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, e.locations.Delete(e.ctx, orgID, parent.ID), domain.ErrHasChildren)
}

func TestLocation_UpdateRechazaCiclo(t *testing.T) {
	e := newEnv(t)
	a, err := e.locations.Create(e.ctx, orgID, dto.CreateLocationRequest{Name: "A"})
	require.NoError(t, err)
	b, err := e.locations.Create(e.ctx, orgID, dto.CreateLocationRequest{Name: "B", ParentID: a.ID})
	require.NoError(t, err)

	_, err = e.locations.Update(e.ctx, orgID, a.ID, dto.UpdateLocationRequest{ParentID: &b.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.locations.Update(e.ctx, orgID, a.ID, dto.UpdateLocationRequest{ParentID: &a.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplier_InactivoMarcaNodo(t *testing.T) {
	e := newEnv(t)
	s, err := e.suppliers.Create(e.ctx, orgID, dto.CreateSupplierRequest{Name: "Ferretería Sur"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SupplierExternal), s.Kind)
	assert.True(t, s.Active)

	off := false
	_, err = e.suppliers.Update(e.ctx, orgID, s.ID, dto.UpdateSupplierRequest{Active: &off})
	require.NoError(t, err)

	n, err := e.repos.Nodes.GetByID(e.ctx, orgID, s.NodeID)
	require.NoError(t, err)
	assert.False(t, n.IsStocked)
	assert.True(t, n.Meta.Inactive())
	assert.Equal(t, string(entity.SupplierExternal), n.Code)
}

func TestSupplier_KindInvalido(t *testing.T) {
	e := newEnv(t)
	_, err := e.suppliers.Create(e.ctx, orgID, dto.CreateSupplierRequest{Name: "X", Kind: "OTRO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomer_NITDuplicado(t *testing.T) {
	e := newEnv(t)
	c, err := e.customers.Create(e.ctx, orgID, dto.CreateCustomerRequest{Name: "Cliente", TaxID: "900123"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.NodeID)

	_, err = e.customers.Create(e.ctx, orgID, dto.CreateCustomerRequest{Name: "Otro", TaxID: "900123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = e.customers.Create(e.ctx, otherOrgID, dto.CreateCustomerRequest{Name: "Otro", TaxID: "900123"})
	assert.NoError(t, err)
}

func TestCustomer_GetDeOtraOrganizacion(t *testing.T) {
	e := newEnv(t)
	c, err := e.customers.Create(e.ctx, orgID, dto.CreateCustomerRequest{Name: "Cliente", TaxID: "1"})
	require.NoError(t, err)

	got, err := e.customers.GetByID(e.ctx, otherOrgID, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
