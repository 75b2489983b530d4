package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// SyncRefNode refleja una entidad de origen en el registro de nodos.
// Se llama desde el flujo de escritura de la entidad, con el repositorio de la misma tx.
func SyncRefNode(ctx context.Context, nodes repository.NodeRepository, src entity.NodeSource) (*entity.Node, error) {
	n := src.AsNode()
	if err := validateNode(n); err != nil {
		return nil, err
	}
	if err := nodes.Upsert(ctx, n); err != nil {
		return nil, fmt.Errorf("upsert node %s/%s: %w", n.RefTable, n.RefID, err)
	}
	return n, nil
}

// RemoveRefNode elimina el nodo de una entidad de origen. Si el nodo no existe no hace nada;
// si tiene movimientos devuelve domain.ErrNodeInUse y la tx del llamador debe abortar.
func RemoveRefNode(ctx context.Context, nodes repository.NodeRepository, orgID string, ref entity.NodeRef) error {
	n, err := nodes.FindByRef(ctx, orgID, ref)
	if err != nil {
		return err
	}
	if n == nil {
		return nil
	}
	used, err := nodes.IsReferenced(ctx, n.ID)
	if err != nil {
		return err
	}
	if used {
		return domain.ErrNodeInUse
	}
	return nodes.Delete(ctx, orgID, n.ID)
}

func validateNode(n *entity.Node) error {
	if n.OrganizationID == "" {
		return domain.ErrInvalidInput
	}
	if err := n.Ref().Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(n.Name) == "" {
		return domain.ErrInvalidInput
	}
	return nil
}
