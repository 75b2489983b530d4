package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones jerárquicas sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (id, organization_id, parent_id, code, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.OrganizationID, nullable(l.ParentID), nullable(l.Code), l.Name, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Location, error) {
	if !validUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, organization_id, parent_id, code, name, created_at, updated_at
		FROM locations WHERE organization_id = $1 AND id = $2`
	l, err := scanLocation(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	query := `
		UPDATE locations SET parent_id = $3, code = $4, name = $5, updated_at = $6
		WHERE organization_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		l.OrganizationID, l.ID, nullable(l.ParentID), nullable(l.Code), l.Name, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LocationRepo) ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT id, organization_id, parent_id, code, name, created_at, updated_at
		FROM locations WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *LocationRepo) CountChildren(ctx context.Context, orgID, id string) (int, error) {
	if !validUUID(id) {
		return 0, nil
	}
	var n int
	query := `SELECT count(*) FROM locations WHERE organization_id = $1 AND parent_id = $2`
	if err := r.q.QueryRow(ctx, query, orgID, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count child locations: %w", err)
	}
	return n, nil
}

func (r *LocationRepo) Delete(ctx context.Context, orgID, id string) error {
	if !validUUID(id) {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM locations WHERE organization_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		if isFKViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var (
		l              entity.Location
		parentID, code *string
	)
	if err := row.Scan(&l.ID, &l.OrganizationID, &parentID, &code, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.ParentID, l.Code = deref(parentID), deref(code)
	return &l, nil
}
