package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Customer, error)
	GetByTaxID(ctx context.Context, orgID, taxID string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Customer, error)
	Delete(ctx context.Context, orgID, id string) error
}
