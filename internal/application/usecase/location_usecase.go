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

// maxLocationDepth corta el recorrido de ancestros al validar ciclos.
const maxLocationDepth = 64

// LocationUseCase casos de uso para ubicaciones jerárquicas.
type LocationUseCase struct {
	tx    ports.TxRunner
	repos ports.Repositories
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(tx ports.TxRunner, repos ports.Repositories) *LocationUseCase {
	return &LocationUseCase{tx: tx, repos: repos}
}

// Create crea una ubicación y su nodo.
func (uc *LocationUseCase) Create(ctx context.Context, orgID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	ts := now()
	location := &entity.Location{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		ParentID:       in.ParentID,
		Code:           in.Code,
		Name:           in.Name,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	var nodeID string
	err := uc.tx.Run(ctx, func(r ports.Repositories) error {
		if err := checkLocation(ctx, r, orgID, location.ParentID); err != nil {
			return err
		}
		if err := r.Locations.Create(ctx, location); err != nil {
			return fmt.Errorf("create location: %w", err)
		}
		n, err := inventory.SyncRefNode(ctx, r.Nodes, location)
		if err != nil {
			return err
		}
		nodeID = n.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toLocationResponse(location, nodeID), nil
}

// GetByID obtiene una ubicación; nil si no existe.
func (uc *LocationUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.LocationResponse, error) {
	location, err := uc.repos.Locations.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	nodeID, err := nodeIDFor(ctx, uc.repos.Nodes, orgID, entity.LocationRef(id))
	if err != nil {
		return nil, err
	}
	return toLocationResponse(location, nodeID), nil
}

// Update actualiza una ubicación. Mover bajo sí misma o bajo un descendiente es domain.ErrInvalidInput.
func (uc *LocationUseCase) Update(ctx context.Context, orgID, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	var (
		location *entity.Location
		nodeID   string
	)
	err := uc.tx.Run(ctx, func(r ports.Repositories) error {
		var err error
		location, err = r.Locations.GetByID(ctx, orgID, id)
		if err != nil {
			return err
		}
		if location == nil {
			return domain.ErrNotFound
		}
		if in.ParentID != nil {
			if err := checkParent(ctx, r, orgID, id, *in.ParentID); err != nil {
				return err
			}
			location.ParentID = *in.ParentID
		}
		if in.Code != nil {
			location.Code = *in.Code
		}
		if in.Name != nil {
			location.Name = *in.Name
		}
		location.UpdatedAt = now()
		if err := r.Locations.Update(ctx, location); err != nil {
			return fmt.Errorf("update location: %w", err)
		}
		n, err := inventory.SyncRefNode(ctx, r.Nodes, location)
		if err != nil {
			return err
		}
		nodeID = n.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toLocationResponse(location, nodeID), nil
}

// List lista ubicaciones de la organización.
func (uc *LocationUseCase) List(ctx context.Context, orgID string, limit, offset int) (*dto.LocationListResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repos.Locations.ListByOrganization(ctx, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		nodeID, err := nodeIDFor(ctx, uc.repos.Nodes, orgID, entity.LocationRef(l.ID))
		if err != nil {
			return nil, err
		}
		items = append(items, *toLocationResponse(l, nodeID))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una ubicación sin hijas y sin movimientos.
func (uc *LocationUseCase) Delete(ctx context.Context, orgID, id string) error {
	return uc.tx.Run(ctx, func(r ports.Repositories) error {
		location, err := r.Locations.GetByID(ctx, orgID, id)
		if err != nil {
			return err
		}
		if location == nil {
			return domain.ErrNotFound
		}
		children, err := r.Locations.CountChildren(ctx, orgID, id)
		if err != nil {
			return err
		}
		if children > 0 {
			return domain.ErrHasChildren
		}
		if err := inventory.RemoveRefNode(ctx, r.Nodes, orgID, entity.LocationRef(id)); err != nil {
			return err
		}
		return r.Locations.Delete(ctx, orgID, id)
	})
}

func checkParent(ctx context.Context, r ports.Repositories, orgID, id, parentID string) error {
	for depth, cur := 0, parentID; cur != ""; depth++ {
		if cur == id || depth > maxLocationDepth {
			return fmt.Errorf("parent %s: %w", parentID, domain.ErrInvalidInput)
		}
		loc, err := r.Locations.GetByID(ctx, orgID, cur)
		if err != nil {
			return err
		}
		if loc == nil {
			return fmt.Errorf("parent %s: %w", parentID, domain.ErrInvalidInput)
		}
		cur = loc.ParentID
	}
	return nil
}

func toLocationResponse(l *entity.Location, nodeID string) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		NodeID:         nodeID,
		ParentID:       l.ParentID,
		Code:           l.Code,
		Name:           l.Name,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
