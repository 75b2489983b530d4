package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// WarehouseUseCase casos de uso CRUD para bodegas. Cada escritura mantiene su nodo en la misma tx.
type WarehouseUseCase struct {
	tx    ports.TxRunner
	repos ports.Repositories
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(tx ports.TxRunner, repos ports.Repositories) *WarehouseUseCase {
	return &WarehouseUseCase{tx: tx, repos: repos}
}

// Create crea una nueva bodega y su nodo.
func (uc *WarehouseUseCase) Create(ctx context.Context, orgID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	ts := now()
	warehouse := &entity.Warehouse{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		LocationID:     in.LocationID,
		Code:           in.Code,
		Name:           in.Name,
		Address:        in.Address,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	var nodeID string
	err := uc.tx.Run(ctx, func(r ports.Repositories) error {
		if err := checkLocation(ctx, r, orgID, warehouse.LocationID); err != nil {
			return err
		}
		if err := r.Warehouses.Create(ctx, warehouse); err != nil {
			return fmt.Errorf("create warehouse: %w", err)
		}
		n, err := inventory.SyncRefNode(ctx, r.Nodes, warehouse)
		if err != nil {
			return err
		}
		nodeID = n.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse, nodeID), nil
}

// GetByID obtiene una bodega por ID; nil si no existe en la organización.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repos.Warehouses.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	nodeID, err := nodeIDFor(ctx, uc.repos.Nodes, orgID, entity.WarehouseRef(id))
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse, nodeID), nil
}

// Update actualiza una bodega y fusiona su nodo.
func (uc *WarehouseUseCase) Update(ctx context.Context, orgID, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	var (
		warehouse *entity.Warehouse
		nodeID    string
	)
	err := uc.tx.Run(ctx, func(r ports.Repositories) error {
		var err error
		warehouse, err = r.Warehouses.GetByID(ctx, orgID, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.ErrNotFound
		}
		if in.Code != nil {
			warehouse.Code = *in.Code
		}
		if in.Name != nil {
			warehouse.Name = *in.Name
		}
		if in.Address != nil {
			warehouse.Address = *in.Address
		}
		if in.LocationID != nil {
			if err := checkLocation(ctx, r, orgID, *in.LocationID); err != nil {
				return err
			}
			warehouse.LocationID = *in.LocationID
		}
		warehouse.UpdatedAt = now()
		if err := r.Warehouses.Update(ctx, warehouse); err != nil {
			return fmt.Errorf("update warehouse: %w", err)
		}
		n, err := inventory.SyncRefNode(ctx, r.Nodes, warehouse)
		if err != nil {
			return err
		}
		nodeID = n.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse, nodeID), nil
}

// List lista bodegas por organización con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, orgID string, limit, offset int) (*dto.WarehouseListResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repos.Warehouses.ListByOrganization(ctx, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		nodeID, err := nodeIDFor(ctx, uc.repos.Nodes, orgID, entity.WarehouseRef(w.ID))
		if err != nil {
			return nil, err
		}
		items = append(items, *toWarehouseResponse(w, nodeID))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una bodega. Falla con domain.ErrNodeInUse si su nodo tiene movimientos.
func (uc *WarehouseUseCase) Delete(ctx context.Context, orgID, id string) error {
	return uc.tx.Run(ctx, func(r ports.Repositories) error {
		warehouse, err := r.Warehouses.GetByID(ctx, orgID, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.ErrNotFound
		}
		if err := inventory.RemoveRefNode(ctx, r.Nodes, orgID, entity.WarehouseRef(id)); err != nil {
			return err
		}
		return r.Warehouses.Delete(ctx, orgID, id)
	})
}

// checkLocation valida que la ubicación exista en la organización (vacío = sin ubicación).
func checkLocation(ctx context.Context, r ports.Repositories, orgID, locationID string) error {
	if locationID == "" {
		return nil
	}
	loc, err := r.Locations.GetByID(ctx, orgID, locationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return fmt.Errorf("location %s: %w", locationID, domain.ErrInvalidInput)
	}
	return nil
}

func toWarehouseResponse(w *entity.Warehouse, nodeID string) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:             w.ID,
		OrganizationID: w.OrganizationID,
		NodeID:         nodeID,
		LocationID:     w.LocationID,
		Code:           w.Code,
		Name:           w.Name,
		Address:        w.Address,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}
