package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.NodeRepository = (*NodeRepo)(nil)

const nodeColumns = `id, organization_id, node_type, ref_table, ref_id, code, name, is_stocked, meta, created_at, updated_at`

// NodeRepo registro de nodos sobre PostgreSQL (usable con pool o tx).
type NodeRepo struct {
	q Querier
}

// NewNodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNodeRepository(q Querier) *NodeRepo {
	return &NodeRepo{q: q}
}

// Upsert inserta o fusiona por la clave natural; conserva id y created_at del nodo existente.
func (r *NodeRepo) Upsert(ctx context.Context, n *entity.Node) error {
	query := `
		INSERT INTO nodes (id, organization_id, node_type, ref_table, ref_id, code, name, is_stocked, meta, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		ON CONFLICT (organization_id, node_type, ref_table, ref_id)
		DO UPDATE SET code = EXCLUDED.code, name = EXCLUDED.name, is_stocked = EXCLUDED.is_stocked,
			meta = EXCLUDED.meta, updated_at = now()
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		uuid.New().String(), n.OrganizationID, string(n.Type), n.RefTable, n.RefID,
		nullable(n.Code), n.Name, n.IsStocked, n.Meta,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert node: %w", err)
	}
	return nil
}

func (r *NodeRepo) Create(ctx context.Context, n *entity.Node) error {
	query := `
		INSERT INTO nodes (id, organization_id, node_type, ref_table, ref_id, code, name, is_stocked, meta, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		uuid.New().String(), n.OrganizationID, string(n.Type), n.RefTable, n.RefID,
		nullable(n.Code), n.Name, n.IsStocked, n.Meta,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert node: %w", err)
	}
	return nil
}

func (r *NodeRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Node, error) {
	if !validUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + nodeColumns + ` FROM nodes WHERE organization_id = $1 AND id = $2`
	n, err := scanNode(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get node: %w", err)
	}
	return n, nil
}

func (r *NodeRepo) GetByIDs(ctx context.Context, orgID string, ids []string) (map[string]*entity.Node, error) {
	out := make(map[string]*entity.Node, len(ids))
	ids = uuids(ids)
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + nodeColumns + ` FROM nodes WHERE organization_id = $1 AND id = ANY($2::uuid[])`
	list, err := r.list(ctx, query, orgID, ids)
	if err != nil {
		return nil, err
	}
	for _, n := range list {
		out[n.ID] = n
	}
	return out, nil
}

func (r *NodeRepo) FindByRef(ctx context.Context, orgID string, ref entity.NodeRef) (*entity.Node, error) {
	query := `SELECT ` + nodeColumns + `
		FROM nodes WHERE organization_id = $1 AND node_type = $2 AND ref_table = $3 AND ref_id = $4`
	n, err := scanNode(r.q.QueryRow(ctx, query, orgID, string(ref.Type), ref.Table, ref.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find node by ref: %w", err)
	}
	return n, nil
}

// ListByOrganization nodos de la organización; types vacío = todos.
func (r *NodeRepo) ListByOrganization(ctx context.Context, orgID string, types []entity.NodeType) ([]*entity.Node, error) {
	query := `SELECT ` + nodeColumns + ` FROM nodes WHERE organization_id = $1`
	args := []any{orgID}
	if len(types) > 0 {
		names := make([]string, 0, len(types))
		for _, t := range types {
			names = append(names, string(t))
		}
		query += ` AND node_type = ANY($2)`
		args = append(args, names)
	}
	list, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	inventory.SortNodes(list)
	return list, nil
}

func (r *NodeRepo) IsReferenced(ctx context.Context, nodeID string) (bool, error) {
	if !validUUID(nodeID) {
		return false, nil
	}
	query := `SELECT EXISTS (SELECT 1 FROM movement_lines WHERE from_node_id = $1 OR to_node_id = $1)`
	var used bool
	if err := r.q.QueryRow(ctx, query, nodeID).Scan(&used); err != nil {
		return false, fmt.Errorf("node referenced: %w", err)
	}
	return used, nil
}

// Delete la FK de movement_lines (ON DELETE RESTRICT) protege los nodos con movimientos.
func (r *NodeRepo) Delete(ctx context.Context, orgID, id string) error {
	if !validUUID(id) {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM nodes WHERE organization_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		if isFKViolation(err) {
			return domain.ErrNodeInUse
		}
		return fmt.Errorf("delete node: %w", err)
	}
	return nil
}

func (r *NodeRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Node, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func scanNode(row pgx.Row) (*entity.Node, error) {
	var (
		n        entity.Node
		nodeType string
		code     *string
	)
	err := row.Scan(&n.ID, &n.OrganizationID, &nodeType, &n.RefTable, &n.RefID,
		&code, &n.Name, &n.IsStocked, &n.Meta, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	n.Type = entity.NodeType(nodeType)
	n.Code = deref(code)
	return &n, nil
}
