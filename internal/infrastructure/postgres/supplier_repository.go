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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, organization_id, kind, name, email, phone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.OrganizationID, string(s.Kind), s.Name, nullable(s.Email), nullable(s.Phone), s.Active,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Supplier, error) {
	if !validUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, organization_id, kind, name, email, phone, active, created_at, updated_at
		FROM suppliers WHERE organization_id = $1 AND id = $2`
	s, err := scanSupplier(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET kind = $3, name = $4, email = $5, phone = $6, active = $7, updated_at = $8
		WHERE organization_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		s.OrganizationID, s.ID, string(s.Kind), s.Name, nullable(s.Email), nullable(s.Phone), s.Active, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT id, organization_id, kind, name, email, phone, active, created_at, updated_at
		FROM suppliers WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) Delete(ctx context.Context, orgID, id string) error {
	if !validUUID(id) {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE organization_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var (
		s            entity.Supplier
		kind         string
		email, phone *string
	)
	if err := row.Scan(&s.ID, &s.OrganizationID, &kind, &s.Name, &email, &phone, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Kind = entity.SupplierKind(kind)
	s.Email, s.Phone = deref(email), deref(phone)
	return &s, nil
}
