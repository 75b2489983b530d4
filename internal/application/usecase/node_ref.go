package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// nodeIDFor devuelve el id del nodo que refleja ref; vacío si aún no existe.
func nodeIDFor(ctx context.Context, nodes repository.NodeRepository, orgID string, ref entity.NodeRef) (string, error) {
	n, err := nodes.FindByRef(ctx, orgID, ref)
	if err != nil || n == nil {
		return "", err
	}
	return n.ID, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func now() time.Time { return time.Now().UTC() }
