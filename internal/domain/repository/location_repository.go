package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Location, error)
	CountChildren(ctx context.Context, orgID, id string) (int, error)
	Delete(ctx context.Context, orgID, id string) error
}
