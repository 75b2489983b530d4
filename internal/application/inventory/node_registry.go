package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// virtualNodeSeeds nodos virtuales que toda organización debe tener.
var virtualNodeSeeds = []struct {
	key  string
	name string
}{
	{entity.VirtualKeyExternal, "External"},
	{entity.VirtualKeyAdjustment, "Adjustment"},
}

// NodeRegistry casos de uso del directorio de nodos.
type NodeRegistry struct {
	tx    ports.TxRunner
	repos ports.Repositories
	log   *logger.Logger
}

// NewNodeRegistry construye el caso de uso.
func NewNodeRegistry(tx ports.TxRunner, repos ports.Repositories, log *logger.Logger) *NodeRegistry {
	return &NodeRegistry{tx: tx, repos: repos, log: log.Component("node_registry")}
}

// UpsertRefNode crea o fusiona el nodo de una entidad (última escritura gana).
func (uc *NodeRegistry) UpsertRefNode(ctx context.Context, src entity.NodeSource) (*entity.Node, error) {
	return SyncRefNode(ctx, uc.repos.Nodes, src)
}

// UpsertVirtualNode crea o fusiona un nodo virtual identificado por key.
func (uc *NodeRegistry) UpsertVirtualNode(ctx context.Context, orgID, key, name string, isStocked bool, meta entity.NodeMeta) (*entity.Node, error) {
	return upsertVirtualNode(ctx, uc.repos.Nodes, virtualNode(orgID, key, name, isStocked, meta))
}

func upsertVirtualNode(ctx context.Context, nodes repository.NodeRepository, n *entity.Node) (*entity.Node, error) {
	if err := validateNode(n); err != nil {
		return nil, err
	}
	if err := nodes.Upsert(ctx, n); err != nil {
		return nil, fmt.Errorf("upsert virtual node %s: %w", n.RefID, err)
	}
	return n, nil
}

// CreateVirtualNode crea un nodo virtual; si la clave ya existe devuelve domain.ErrDuplicate.
func (uc *NodeRegistry) CreateVirtualNode(ctx context.Context, orgID, key, name, code string, isStocked bool, meta entity.NodeMeta) (*entity.Node, error) {
	ctx, span := tracer.Start(ctx, "NodeRegistry.CreateVirtualNode")
	defer span.End()

	n := virtualNode(orgID, key, name, isStocked, meta)
	n.Code = code
	if err := validateNode(n); err != nil {
		return nil, err
	}
	if err := uc.repos.Nodes.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// BootstrapVirtualNodes aprovisiona EXTERNAL y ADJUSTMENT. Es idempotente.
func (uc *NodeRegistry) BootstrapVirtualNodes(ctx context.Context, orgID string) ([]*entity.Node, error) {
	ctx, span := tracer.Start(ctx, "NodeRegistry.BootstrapVirtualNodes",
		trace.WithAttributes(attribute.String("organization_id", orgID)))
	defer span.End()

	var out []*entity.Node
	err := uc.tx.Run(ctx, func(r ports.Repositories) error {
		out = out[:0]
		for _, seed := range virtualNodeSeeds {
			n := virtualNode(orgID, seed.key, seed.name, false, entity.NodeMeta{Kind: seed.key})
			n.Code = seed.key
			n, err := upsertVirtualNode(ctx, r.Nodes, n)
			if err != nil {
				return err
			}
			out = append(out, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("organization_id", orgID).Int("nodes", len(out)).Msg("nodos virtuales aprovisionados")
	return out, nil
}

// DeleteRefNode elimina el nodo de una referencia. A diferencia de RemoveRefNode distingue
// el nodo inexistente (domain.ErrNotFound) del nodo con movimientos (domain.ErrNodeInUse).
func (uc *NodeRegistry) DeleteRefNode(ctx context.Context, orgID string, ref entity.NodeRef) error {
	return uc.tx.Run(ctx, func(r ports.Repositories) error {
		n, err := r.Nodes.FindByRef(ctx, orgID, ref)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
		if err := RemoveRefNode(ctx, r.Nodes, orgID, ref); err != nil {
			if errors.Is(err, domain.ErrNodeInUse) {
				uc.log.Warn().Str("node_id", n.ID).Msg("nodo con movimientos, no se elimina")
			}
			return err
		}
		return nil
	})
}

// FindByRef busca un nodo por su referencia natural.
func (uc *NodeRegistry) FindByRef(ctx context.Context, orgID string, ref entity.NodeRef) (*entity.Node, error) {
	n, err := uc.repos.Nodes.FindByRef(ctx, orgID, ref)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return n, nil
}

// GetByID obtiene un nodo de la organización.
func (uc *NodeRegistry) GetByID(ctx context.Context, orgID, id string) (*entity.Node, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	n, err := uc.repos.Nodes.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return n, nil
}

// List lista los nodos de la organización ordenados por tipo y nombre; types vacío = todos.
func (uc *NodeRegistry) List(ctx context.Context, orgID string, types []entity.NodeType) ([]*entity.Node, error) {
	for _, t := range types {
		if !t.Valid() {
			return nil, domain.ErrInvalidNodeType
		}
	}
	return uc.repos.Nodes.ListByOrganization(ctx, orgID, types)
}

func virtualNode(orgID, key, name string, isStocked bool, meta entity.NodeMeta) *entity.Node {
	ref := entity.VirtualRef(key)
	return &entity.Node{
		OrganizationID: orgID,
		Type:           ref.Type,
		RefTable:       ref.Table,
		RefID:          ref.ID,
		Name:           name,
		IsStocked:      isStocked,
		Meta:           meta,
	}
}
