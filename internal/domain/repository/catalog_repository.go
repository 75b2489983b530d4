package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ItemRepository lectura del catálogo de ítems; Create solo se usa para datos semilla.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByIDs(ctx context.Context, orgID string, ids []string) (map[string]*entity.Item, error)
}

// UnitRepository lectura de unidades de medida.
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByIDs(ctx context.Context, orgID string, ids []string) (map[string]*entity.Unit, error)
}
