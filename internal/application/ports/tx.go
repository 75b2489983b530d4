package ports

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// Repositories agrupa los repositorios atados a una misma conexión o transacción.
type Repositories struct {
	Nodes      repository.NodeRepository
	Movements  repository.MovementRepository
	Balances   repository.BalanceReader
	Items      repository.ItemRepository
	Units      repository.UnitRepository
	Warehouses repository.WarehouseRepository
	Locations  repository.LocationRepository
	Suppliers  repository.SupplierRepository
	Customers  repository.CustomerRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback y ningún cambio queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repositories) error) error
}
