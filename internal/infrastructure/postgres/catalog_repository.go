package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var (
	_ repository.ItemRepository = (*ItemRepo)(nil)
	_ repository.UnitRepository = (*UnitRepo)(nil)
)

// ItemRepo catálogo de ítems sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (id, organization_id, code, name, unit_id, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query,
		item.ID, item.OrganizationID, item.Code, item.Name, nullable(item.UnitID), item.Active,
	).Scan(&item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetByIDs(ctx context.Context, orgID string, ids []string) (map[string]*entity.Item, error) {
	out := make(map[string]*entity.Item, len(ids))
	ids = uuids(ids)
	if len(ids) == 0 {
		return out, nil
	}
	query := `
		SELECT id, organization_id, code, name, unit_id, active, created_at
		FROM items WHERE organization_id = $1 AND id = ANY($2::uuid[])`
	rows, err := r.q.Query(ctx, query, orgID, ids)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			it     entity.Item
			unitID *string
		)
		if err := rows.Scan(&it.ID, &it.OrganizationID, &it.Code, &it.Name, &unitID, &it.Active, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.UnitID = deref(unitID)
		out[it.ID] = &it
	}
	return out, rows.Err()
}

// UnitRepo unidades de medida sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

func (r *UnitRepo) Create(ctx context.Context, unit *entity.Unit) error {
	if unit.ID == "" {
		unit.ID = uuid.New().String()
	}
	query := `
		INSERT INTO units (id, organization_id, code, name, active, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query, unit.ID, unit.OrganizationID, unit.Code, unit.Name, unit.Active).Scan(&unit.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByIDs(ctx context.Context, orgID string, ids []string) (map[string]*entity.Unit, error) {
	out := make(map[string]*entity.Unit, len(ids))
	ids = uuids(ids)
	if len(ids) == 0 {
		return out, nil
	}
	query := `
		SELECT id, organization_id, code, name, active, created_at
		FROM units WHERE organization_id = $1 AND id = ANY($2::uuid[])`
	rows, err := r.q.Query(ctx, query, orgID, ids)
	if err != nil {
		return nil, fmt.Errorf("get units: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.OrganizationID, &u.Code, &u.Name, &u.Active, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		out[u.ID] = &u
	}
	return out, rows.Err()
}
