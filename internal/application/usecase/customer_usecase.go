package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	tx    ports.TxRunner
	repos ports.Repositories
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(tx ports.TxRunner, repos ports.Repositories) *CustomerUseCase {
	return &CustomerUseCase{tx: tx, repos: repos}
}

// Create crea un nuevo cliente. El NIT/cédula es único por organización.
func (uc *CustomerUseCase) Create(ctx context.Context, orgID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.TaxID) == "" {
		return nil, domain.ErrInvalidInput
	}
	ts := now()
	customer := &entity.Customer{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           in.Name,
		TaxID:          strings.TrimSpace(in.TaxID),
		Email:          in.Email,
		Phone:          in.Phone,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	var nodeID string
	err := uc.tx.Run(ctx, func(r ports.Repositories) error {
		existing, err := r.Customers.GetByTaxID(ctx, orgID, customer.TaxID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := r.Customers.Create(ctx, customer); err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		n, err := inventory.SyncRefNode(ctx, r.Nodes, customer)
		if err != nil {
			return err
		}
		nodeID = n.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer, nodeID), nil
}

// GetByID obtiene un cliente; nil si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repos.Customers.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	nodeID, err := nodeIDFor(ctx, uc.repos.Nodes, orgID, entity.CustomerRef(id))
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer, nodeID), nil
}

// Update actualiza nombre y contacto de un cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, orgID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	var (
		customer *entity.Customer
		nodeID   string
	)
	err := uc.tx.Run(ctx, func(r ports.Repositories) error {
		var err error
		customer, err = r.Customers.GetByID(ctx, orgID, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			customer.Name = *in.Name
		}
		if in.Email != nil {
			customer.Email = *in.Email
		}
		if in.Phone != nil {
			customer.Phone = *in.Phone
		}
		customer.UpdatedAt = now()
		if err := r.Customers.Update(ctx, customer); err != nil {
			return fmt.Errorf("update customer: %w", err)
		}
		n, err := inventory.SyncRefNode(ctx, r.Nodes, customer)
		if err != nil {
			return err
		}
		nodeID = n.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer, nodeID), nil
}

// List lista clientes de la organización.
func (uc *CustomerUseCase) List(ctx context.Context, orgID string, limit, offset int) (*dto.CustomerListResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repos.Customers.ListByOrganization(ctx, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		nodeID, err := nodeIDFor(ctx, uc.repos.Nodes, orgID, entity.CustomerRef(c.ID))
		if err != nil {
			return nil, err
		}
		items = append(items, *toCustomerResponse(c, nodeID))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un cliente cuyo nodo no tenga movimientos.
func (uc *CustomerUseCase) Delete(ctx context.Context, orgID, id string) error {
	return uc.tx.Run(ctx, func(r ports.Repositories) error {
		customer, err := r.Customers.GetByID(ctx, orgID, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		if err := inventory.RemoveRefNode(ctx, r.Nodes, orgID, entity.CustomerRef(id)); err != nil {
			return err
		}
		return r.Customers.Delete(ctx, orgID, id)
	})
}

func toCustomerResponse(c *entity.Customer, nodeID string) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		NodeID:         nodeID,
		Name:           c.Name,
		TaxID:          c.TaxID,
		Email:          c.Email,
		Phone:          c.Phone,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
