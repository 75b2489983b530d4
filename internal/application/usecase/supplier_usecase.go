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

// SupplierUseCase casos de uso para proveedores.
type SupplierUseCase struct {
	tx    ports.TxRunner
	repos ports.Repositories
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(tx ports.TxRunner, repos ports.Repositories) *SupplierUseCase {
	return &SupplierUseCase{tx: tx, repos: repos}
}

// Create crea un proveedor (activo salvo que se indique lo contrario) y su nodo.
func (uc *SupplierUseCase) Create(ctx context.Context, orgID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	kind, err := entity.ParseSupplierKind(in.Kind)
	if err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	ts := now()
	supplier := &entity.Supplier{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Kind:           kind,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Active:         active,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	var nodeID string
	err = uc.tx.Run(ctx, func(r ports.Repositories) error {
		if err := r.Suppliers.Create(ctx, supplier); err != nil {
			return fmt.Errorf("create supplier: %w", err)
		}
		n, err := inventory.SyncRefNode(ctx, r.Nodes, supplier)
		if err != nil {
			return err
		}
		nodeID = n.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier, nodeID), nil
}

// GetByID obtiene un proveedor; nil si no existe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repos.Suppliers.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	nodeID, err := nodeIDFor(ctx, uc.repos.Nodes, orgID, entity.SupplierRef(id))
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier, nodeID), nil
}

// Update actualiza un proveedor. Desactivarlo marca su nodo como inactivo para nuevos movimientos.
func (uc *SupplierUseCase) Update(ctx context.Context, orgID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	var (
		supplier *entity.Supplier
		nodeID   string
	)
	err := uc.tx.Run(ctx, func(r ports.Repositories) error {
		var err error
		supplier, err = r.Suppliers.GetByID(ctx, orgID, id)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
		if in.Kind != nil {
			kind, err := entity.ParseSupplierKind(*in.Kind)
			if err != nil {
				return err
			}
			supplier.Kind = kind
		}
		if in.Name != nil {
			supplier.Name = *in.Name
		}
		if in.Email != nil {
			supplier.Email = *in.Email
		}
		if in.Phone != nil {
			supplier.Phone = *in.Phone
		}
		if in.Active != nil {
			supplier.Active = *in.Active
		}
		supplier.UpdatedAt = now()
		if err := r.Suppliers.Update(ctx, supplier); err != nil {
			return fmt.Errorf("update supplier: %w", err)
		}
		n, err := inventory.SyncRefNode(ctx, r.Nodes, supplier)
		if err != nil {
			return err
		}
		nodeID = n.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier, nodeID), nil
}

// List lista proveedores de la organización.
func (uc *SupplierUseCase) List(ctx context.Context, orgID string, limit, offset int) (*dto.SupplierListResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repos.Suppliers.ListByOrganization(ctx, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		nodeID, err := nodeIDFor(ctx, uc.repos.Nodes, orgID, entity.SupplierRef(s.ID))
		if err != nil {
			return nil, err
		}
		items = append(items, *toSupplierResponse(s, nodeID))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un proveedor cuyo nodo no tenga movimientos.
func (uc *SupplierUseCase) Delete(ctx context.Context, orgID, id string) error {
	return uc.tx.Run(ctx, func(r ports.Repositories) error {
		supplier, err := r.Suppliers.GetByID(ctx, orgID, id)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
		if err := inventory.RemoveRefNode(ctx, r.Nodes, orgID, entity.SupplierRef(id)); err != nil {
			return err
		}
		return r.Suppliers.Delete(ctx, orgID, id)
	})
}

func toSupplierResponse(s *entity.Supplier, nodeID string) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:             s.ID,
		OrganizationID: s.OrganizationID,
		NodeID:         nodeID,
		Kind:           string(s.Kind),
		Name:           s.Name,
		Email:          s.Email,
		Phone:          s.Phone,
		Active:         s.Active,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
