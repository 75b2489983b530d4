package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/report"
	apphttp "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// api aplicación completa sobre el store en memoria, con nodos virtuales y un ítem.
type api struct {
	app      *fiber.App
	item     *entity.Item
	external string
	token    string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	log := logger.Nop()

	registry := inventory.NewNodeRegistry(store, repos, log)
	balances := inventory.NewBalanceUseCase(repos, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Nodes:     registry,
		Movements: inventory.NewMovementUseCase(store, repos, inventory.DefaultLedgerConfig(), nil, log),
		Balances:  balances,
		Reports: inventory.NewBalanceReportUseCase(balances, map[string]inventory.BalanceRenderer{
			"pdf":  report.NewPDFRenderer(),
			"xlsx": report.NewXLSXRenderer(),
		}),
		WarehouseUC: usecase.NewWarehouseUseCase(store, repos),
		LocationUC:  usecase.NewLocationUseCase(store, repos),
		SupplierUC:  usecase.NewSupplierUseCase(store, repos),
		CustomerUC:  usecase.NewCustomerUseCase(store, repos),
		JWTSecret:   testJWTSecret,
		Logger:      log,
	})

	unit := &entity.Unit{OrganizationID: testOrgID, Code: "UND", Name: "Unidad", Active: true}
	require.NoError(t, repos.Units.Create(ctx, unit))
	item := &entity.Item{OrganizationID: testOrgID, Code: "TOR-01", Name: "Tornillo", UnitID: unit.ID, Active: true}
	require.NoError(t, repos.Items.Create(ctx, item))
	virtual, err := registry.BootstrapVirtualNodes(ctx, testOrgID)
	require.NoError(t, err)

	return &api{app: app, item: item, external: virtual[0].ID, token: tokenForRole(t, apphttp.RoleBodeguero)}
}

func (a *api) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	return a.doAs(t, a.token, method, path, body, out)
}

func (a *api) doAs(t *testing.T, token, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *api) warehouse(t *testing.T, name string) dto.WarehouseResponse {
	t.Helper()
	var w dto.WarehouseResponse
	status := a.do(t, http.MethodPost, "/api/warehouses", fiber.Map{"name": name}, &w)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, w.NodeID)
	return w
}

func (a *api) line(from, to, quantity string) fiber.Map {
	return fiber.Map{"item_id": a.item.ID, "from_node_id": from, "to_node_id": to, "quantity": quantity}
}

func TestMovements_EscenarioEntradaYSalida(t *testing.T) {
	a := newAPI(t)
	w1 := a.warehouse(t, "Bodega Uno")

	var ev dto.MovementEventResponse
	status := a.do(t, http.MethodPost, "/api/inventory/movements", fiber.Map{"lines": []fiber.Map{a.line(a.external, w1.NodeID, "100")}}, &ev)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "POSTED", ev.Status)
	assert.Equal(t, "MOVE", ev.EventType)
	require.Len(t, ev.Lines, 1)
	assert.Equal(t, 1, ev.Lines[0].LineNo)
	assert.Equal(t, a.item.UnitID, ev.Lines[0].UnitID)

	// forma abreviada de una sola línea
	short := a.line(w1.NodeID, a.external, "30")
	short["event_type"] = "SALE"
	status = a.do(t, http.MethodPost, "/api/inventory/movements", short, &ev)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "SALE", ev.EventType)

	var balances dto.BalanceListResponse
	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/inventory/balances", nil, &balances))
	got := map[string]string{}
	for _, b := range balances.Items {
		got[b.NodeID] = b.Quantity.String()
	}
	assert.Equal(t, "70", got[w1.NodeID])
	assert.Equal(t, "-70", got[a.external])

	var list dto.MovementListResponse
	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/inventory/movements?limit=1", nil, &list))
	assert.Equal(t, 1, list.Limit)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Bodega Uno", list.Items[0].FromNodeName)
}

func TestMovements_MismoNodoRechazaLote(t *testing.T) {
	a := newAPI(t)
	w1 := a.warehouse(t, "Bodega Uno")

	var errResp dto.ErrorResponse
	status := a.do(t, http.MethodPost, "/api/inventory/movements", fiber.Map{"lines": []fiber.Map{
		a.line(a.external, w1.NodeID, "10"),
		a.line(w1.NodeID, w1.NodeID, "1"),
	}}, &errResp)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "SAME_NODE", errResp.Code)
	require.NotNil(t, errResp.LineIndex)
	assert.Equal(t, 1, *errResp.LineIndex)

	var list dto.MovementListResponse
	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/inventory/movements", nil, &list))
	assert.Empty(t, list.Items)
}

func TestMovements_NodoInexistente(t *testing.T) {
	a := newAPI(t)
	var errResp dto.ErrorResponse
	status := a.do(t, http.MethodPost, "/api/inventory/movements",
		a.line(a.external, "00000000-0000-0000-0000-00000000dead", "1"), &errResp)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAD_TO_NODE", errResp.Code)
}

func TestMovements_CuerpoInvalidoIndicaCampos(t *testing.T) {
	a := newAPI(t)
	var errResp dto.ErrorResponse
	status := a.do(t, http.MethodPost, "/api/inventory/movements", fiber.Map{
		"status": "ARCHIVED",
		"lines":  []fiber.Map{{"quantity": "1"}},
	}, &errResp)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.Contains(t, errResp.Fields, "status")
	assert.Contains(t, errResp.Fields, "lines[0].item_id")
}

func TestMovements_EventoContabilizadoEsInmutable(t *testing.T) {
	a := newAPI(t)
	w1 := a.warehouse(t, "Bodega Uno")

	var ev dto.MovementEventResponse
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/api/inventory/movements", a.line(a.external, w1.NodeID, "5"), &ev))
	lineID := ev.Lines[0].ID

	var errResp dto.ErrorResponse
	status := a.do(t, http.MethodPut, "/api/inventory/movements/"+lineID, a.line(a.external, w1.NodeID, "50"), &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "IMMUTABLE", errResp.Code)

	assert.Equal(t, http.StatusConflict, a.do(t, http.MethodDelete, "/api/inventory/movements/"+lineID, nil, nil))

	var again dto.MovementEventResponse
	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/inventory/movement-events/"+ev.ID, nil, &again))
	assert.Equal(t, "5", again.Lines[0].Quantity.String())
}

func TestMovements_BorradorSeEditaContabilizaYBorra(t *testing.T) {
	a := newAPI(t)
	w1 := a.warehouse(t, "Bodega Uno")

	draft := a.line(a.external, w1.NodeID, "5")
	draft["status"] = "DRAFT"
	var ev dto.MovementEventResponse
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/api/inventory/movements", draft, &ev))
	lineID := ev.Lines[0].ID

	var updated dto.MovementEventResponse
	require.Equal(t, http.StatusOK, a.do(t, http.MethodPut, "/api/inventory/movements/"+lineID, a.line(a.external, w1.NodeID, "8"), &updated))
	assert.Equal(t, "DRAFT", updated.Status)
	assert.Equal(t, "8", updated.Lines[0].Quantity.String())

	// los borradores no cuentan en el saldo por defecto
	var balances dto.BalanceListResponse
	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/inventory/balances", nil, &balances))
	assert.Empty(t, balances.Items)
	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/inventory/balances?statuses=draft", nil, &balances))
	assert.Len(t, balances.Items, 2)

	assert.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, "/api/inventory/movements/"+lineID, nil, nil))
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/api/inventory/movement-events/"+ev.ID, nil, nil))
}

func TestMovements_TransicionesExplicitas(t *testing.T) {
	a := newAPI(t)
	w1 := a.warehouse(t, "Bodega Uno")

	draft := a.line(a.external, w1.NodeID, "5")
	draft["status"] = "DRAFT"
	var ev dto.MovementEventResponse
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/api/inventory/movements", draft, &ev))

	var posted dto.MovementEventResponse
	require.Equal(t, http.StatusOK, a.do(t, http.MethodPost, "/api/inventory/movement-events/"+ev.ID+"/post", nil, &posted))
	assert.Equal(t, "POSTED", posted.Status)

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, a.do(t, http.MethodPost, "/api/inventory/movement-events/"+ev.ID+"/cancel", nil, &errResp))
	assert.Equal(t, "IMMUTABLE", errResp.Code)
}

func TestBalances_FechaInvalida(t *testing.T) {
	a := newAPI(t)
	var errResp dto.ErrorResponse
	status := a.do(t, http.MethodGet, "/api/inventory/balances?from_date=ayer", nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errResp.Fields, "from_date")
}

func TestBalances_ExportXLSX(t *testing.T) {
	a := newAPI(t)
	w1 := a.warehouse(t, "Bodega Uno")
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/api/inventory/movements", a.line(a.external, w1.NodeID, "3"), nil))

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/balances/export?format=xlsx", nil)
	req.Header.Set("Authorization", a.token)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/api/inventory/balances/export?format=csv", nil, &errResp))
}

func TestNodes_FiltroTipoInvalido(t *testing.T) {
	a := newAPI(t)
	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/api/nodes?types=WAREHOUSE,PLANET", nil, &errResp))
	assert.Equal(t, "INVALID_NODE_TYPE", errResp.Code)

	a.warehouse(t, "Bodega Uno")
	var list dto.NodeListResponse
	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/nodes?types=warehouse", nil, &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "WAREHOUSE", list.Items[0].NodeType)
}

func TestNodes_VirtualDuplicado(t *testing.T) {
	a := newAPI(t)
	var n dto.NodeResponse
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/api/nodes", fiber.Map{"key": "scrap", "name": "Merma"}, &n))
	assert.Equal(t, "SCRAP", n.RefID)
	assert.Equal(t, "VIRTUAL", n.NodeType)

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, a.do(t, http.MethodPost, "/api/nodes", fiber.Map{"key": "SCRAP", "name": "Otra"}, &errResp))
	assert.Equal(t, "DUPLICATE", errResp.Code)

	// el aprovisionamiento es idempotente
	var boot dto.NodeListResponse
	require.Equal(t, http.StatusOK, a.do(t, http.MethodPost, "/api/nodes/bootstrap", nil, &boot))
	assert.Equal(t, 2, boot.Total)
}

func TestWarehouses_DeleteConMovimientos409(t *testing.T) {
	a := newAPI(t)
	w1 := a.warehouse(t, "Bodega Uno")
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/api/inventory/movements", a.line(a.external, w1.NodeID, "1"), nil))

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, a.do(t, http.MethodDelete, "/api/warehouses/"+w1.ID, nil, &errResp))
	assert.Equal(t, "NODE_IN_USE", errResp.Code)
	assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/warehouses/"+w1.ID, nil, nil))

	w2 := a.warehouse(t, "Bodega Dos")
	assert.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, "/api/warehouses/"+w2.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/api/warehouses/"+w2.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/api/nodes/"+w2.NodeID, nil, nil))
}

func TestRouter_VendedorSoloLee(t *testing.T) {
	a := newAPI(t)
	seller := tokenForRole(t, apphttp.RoleVendedor)

	assert.Equal(t, http.StatusForbidden, a.doAs(t, seller, http.MethodPost, "/api/warehouses", fiber.Map{"name": "X"}, nil))
	assert.Equal(t, http.StatusOK, a.doAs(t, seller, http.MethodGet, "/api/nodes", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, a.doAs(t, "", http.MethodGet, "/api/nodes", nil, nil))
}
