package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// NodeRepository define el puerto de persistencia del registro de nodos (DIP).
// Los métodos Get/Find devuelven (nil, nil) cuando no existe.
type NodeRepository interface {
	// Upsert inserta o fusiona por (organización, tipo, tabla, ref) y completa ID y fechas en n.
	Upsert(ctx context.Context, n *entity.Node) error
	// Create inserta sin fusionar; devuelve domain.ErrDuplicate si la clave natural ya existe.
	Create(ctx context.Context, n *entity.Node) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Node, error)
	GetByIDs(ctx context.Context, orgID string, ids []string) (map[string]*entity.Node, error)
	FindByRef(ctx context.Context, orgID string, ref entity.NodeRef) (*entity.Node, error)
	ListByOrganization(ctx context.Context, orgID string, types []entity.NodeType) ([]*entity.Node, error)
	// IsReferenced indica si alguna línea de movimiento usa el nodo como origen o destino.
	IsReferenced(ctx context.Context, nodeID string) (bool, error)
	// Delete devuelve domain.ErrNodeInUse si el nodo tiene movimientos.
	Delete(ctx context.Context, orgID, id string) error
}
