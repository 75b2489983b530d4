package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

var errAlreadySeeded = errors.New("la organización ya tiene bodegas; seed es solo para organizaciones vacías")

type seedResult struct {
	WarehouseID     string
	WarehouseNodeID string
	EventID         string
	Lines           int
}

var demoItems = []struct {
	code, name, unit string
	opening          string
}{
	{"TOR-01", "Tornillo 1/4", "UND", "500"},
	{"CEM-50", "Cemento 50 kg", "BUL", "40"},
	{"ARE-01", "Arena lavada", "KG", "1250.5"},
}

var demoUnits = []struct{ code, name string }{
	{"UND", "Unidad"},
	{"BUL", "Bulto"},
	{"KG", "Kilogramo"},
}

// seedDemo carga un catálogo mínimo y registra el saldo inicial como una entrada desde EXTERNAL.
func seedDemo(ctx context.Context, tx ports.TxRunner, repos ports.Repositories, log *logger.Logger, orgID string) (*seedResult, error) {
	registry := inventory.NewNodeRegistry(tx, repos, log)
	existing, err := registry.List(ctx, orgID, []entity.NodeType{entity.NodeTypeWarehouse})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, errAlreadySeeded
	}

	units := make(map[string]string, len(demoUnits))
	for _, u := range demoUnits {
		unit := &entity.Unit{OrganizationID: orgID, Code: u.code, Name: u.name, Active: true}
		if err := repos.Units.Create(ctx, unit); err != nil {
			return nil, fmt.Errorf("unidad %s: %w", u.code, err)
		}
		units[u.code] = unit.ID
	}

	virtual, err := registry.BootstrapVirtualNodes(ctx, orgID)
	if err != nil {
		return nil, err
	}
	var external *entity.Node
	for _, n := range virtual {
		if n.RefID == entity.VirtualKeyExternal {
			external = n
		}
	}

	location, err := usecase.NewLocationUseCase(tx, repos).Create(ctx, orgID, dto.CreateLocationRequest{Code: "SEDE", Name: "Sede principal"})
	if err != nil {
		return nil, fmt.Errorf("ubicación: %w", err)
	}
	warehouse, err := usecase.NewWarehouseUseCase(tx, repos).Create(ctx, orgID, dto.CreateWarehouseRequest{
		Code: "BOD-01", Name: "Bodega principal", LocationID: location.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("bodega: %w", err)
	}

	lines := make([]inventory.LineInput, 0, len(demoItems))
	for _, it := range demoItems {
		item := &entity.Item{OrganizationID: orgID, Code: it.code, Name: it.name, UnitID: units[it.unit], Active: true}
		if err := repos.Items.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("ítem %s: %w", it.code, err)
		}
		lines = append(lines, inventory.LineInput{
			ItemID:     item.ID,
			FromNodeID: external.ID,
			ToNodeID:   warehouse.NodeID,
			Quantity:   decimal.RequireFromString(it.opening),
		})
	}

	movements := inventory.NewMovementUseCase(tx, repos, inventory.DefaultLedgerConfig(), nil, log)
	ev, err := movements.CreateEvent(ctx, inventory.CreateEventInput{
		OrganizationID: orgID,
		EventType:      "OPENING",
		Status:         string(entity.StatusPosted),
		ReferenceType:  "seed",
		Note:           "saldo inicial demo",
		Lines:          lines,
	})
	if err != nil {
		return nil, fmt.Errorf("saldo inicial: %w", err)
	}
	log.Info().Str("organization_id", orgID).Str("event_id", ev.Event.ID).Msg("datos demo cargados")
	return &seedResult{
		WarehouseID:     warehouse.ID,
		WarehouseNodeID: warehouse.NodeID,
		EventID:         ev.Event.ID,
		Lines:           len(ev.Lines),
	}, nil
}
