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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, organization_id, name, tax_id, email, phone, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente; (organization_id, tax_id) es único.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, organization_id, name, tax_id, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.OrganizationID, customer.Name, customer.TaxID,
		nullable(customer.Email), nullable(customer.Phone), customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Customer, error) {
	if !validUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE organization_id = $1 AND id = $2`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByTaxID obtiene un cliente por organización y NIT/cédula.
func (r *CustomerRepo) GetByTaxID(ctx context.Context, orgID, taxID string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE organization_id = $1 AND tax_id = $2`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, orgID, taxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by tax_id: %w", err)
	}
	return c, nil
}

// ListByOrganization lista clientes de la organización con paginación.
func (r *CustomerRepo) ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE organization_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $3, tax_id = $4, email = $5, phone = $6, updated_at = $7
		WHERE organization_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		customer.OrganizationID, customer.ID, customer.Name, customer.TaxID,
		nullable(customer.Email), nullable(customer.Phone), customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, orgID, id string) error {
	if !validUUID(id) {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM customers WHERE organization_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var (
		c            entity.Customer
		email, phone *string
	)
	if err := row.Scan(&c.ID, &c.OrganizationID, &c.Name, &c.TaxID, &email, &phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Email, c.Phone = deref(email), deref(phone)
	return &c, nil
}
