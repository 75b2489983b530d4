package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var (
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.LocationRepository  = (*LocationRepo)(nil)
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
	_ repository.CustomerRepository  = (*CustomerRepo)(nil)
)

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct {
	a access
}

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.a.write(func(st *state) error {
		st.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, orgID, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.a.read(func(st *state) {
		if w, ok := st.warehouses[id]; ok && w.OrganizationID == orgID {
			out = &w
		}
	})
	return out, nil
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	return r.a.write(func(st *state) error {
		if cur, ok := st.warehouses[w.ID]; !ok || cur.OrganizationID != w.OrganizationID {
			return domain.ErrNotFound
		}
		st.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) ListByOrganization(_ context.Context, orgID string, limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	r.a.read(func(st *state) {
		for _, w := range st.warehouses {
			if w.OrganizationID == orgID {
				list = append(list, &w)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *WarehouseRepo) Delete(_ context.Context, orgID, id string) error {
	return r.a.write(func(st *state) error {
		if w, ok := st.warehouses[id]; ok && w.OrganizationID == orgID {
			delete(st.warehouses, id)
		}
		return nil
	})
}

// LocationRepo ubicaciones en memoria.
type LocationRepo struct {
	a access
}

func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	return r.a.write(func(st *state) error {
		st.locations[l.ID] = *l
		return nil
	})
}

func (r *LocationRepo) GetByID(_ context.Context, orgID, id string) (*entity.Location, error) {
	var out *entity.Location
	r.a.read(func(st *state) {
		if l, ok := st.locations[id]; ok && l.OrganizationID == orgID {
			out = &l
		}
	})
	return out, nil
}

func (r *LocationRepo) Update(_ context.Context, l *entity.Location) error {
	return r.a.write(func(st *state) error {
		if cur, ok := st.locations[l.ID]; !ok || cur.OrganizationID != l.OrganizationID {
			return domain.ErrNotFound
		}
		st.locations[l.ID] = *l
		return nil
	})
}

func (r *LocationRepo) ListByOrganization(_ context.Context, orgID string, limit, offset int) ([]*entity.Location, error) {
	var list []*entity.Location
	r.a.read(func(st *state) {
		for _, l := range st.locations {
			if l.OrganizationID == orgID {
				list = append(list, &l)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *LocationRepo) CountChildren(_ context.Context, orgID, id string) (int, error) {
	n := 0
	r.a.read(func(st *state) {
		for _, l := range st.locations {
			if l.OrganizationID == orgID && l.ParentID == id {
				n++
			}
		}
	})
	return n, nil
}

func (r *LocationRepo) Delete(_ context.Context, orgID, id string) error {
	return r.a.write(func(st *state) error {
		if l, ok := st.locations[id]; ok && l.OrganizationID == orgID {
			delete(st.locations, id)
		}
		return nil
	})
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	a access
}

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.a.write(func(st *state) error {
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, orgID, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	r.a.read(func(st *state) {
		if s, ok := st.suppliers[id]; ok && s.OrganizationID == orgID {
			out = &s
		}
	})
	return out, nil
}

func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	return r.a.write(func(st *state) error {
		if cur, ok := st.suppliers[s.ID]; !ok || cur.OrganizationID != s.OrganizationID {
			return domain.ErrNotFound
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) ListByOrganization(_ context.Context, orgID string, limit, offset int) ([]*entity.Supplier, error) {
	var list []*entity.Supplier
	r.a.read(func(st *state) {
		for _, s := range st.suppliers {
			if s.OrganizationID == orgID {
				list = append(list, &s)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *SupplierRepo) Delete(_ context.Context, orgID, id string) error {
	return r.a.write(func(st *state) error {
		if s, ok := st.suppliers[id]; ok && s.OrganizationID == orgID {
			delete(st.suppliers, id)
		}
		return nil
	})
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct {
	a access
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.a.write(func(st *state) error {
		for _, other := range st.customers {
			if other.OrganizationID == c.OrganizationID && other.TaxID == c.TaxID {
				return domain.ErrDuplicate
			}
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, orgID, id string) (*entity.Customer, error) {
	var out *entity.Customer
	r.a.read(func(st *state) {
		if c, ok := st.customers[id]; ok && c.OrganizationID == orgID {
			out = &c
		}
	})
	return out, nil
}

func (r *CustomerRepo) GetByTaxID(_ context.Context, orgID, taxID string) (*entity.Customer, error) {
	var out *entity.Customer
	r.a.read(func(st *state) {
		for _, c := range st.customers {
			if c.OrganizationID == orgID && c.TaxID == taxID {
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.a.write(func(st *state) error {
		if cur, ok := st.customers[c.ID]; !ok || cur.OrganizationID != c.OrganizationID {
			return domain.ErrNotFound
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) ListByOrganization(_ context.Context, orgID string, limit, offset int) ([]*entity.Customer, error) {
	var list []*entity.Customer
	r.a.read(func(st *state) {
		for _, c := range st.customers {
			if c.OrganizationID == orgID {
				list = append(list, &c)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *CustomerRepo) Delete(_ context.Context, orgID, id string) error {
	return r.a.write(func(st *state) error {
		if c, ok := st.customers[id]; ok && c.OrganizationID == orgID {
			delete(st.customers, id)
		}
		return nil
	})
}
