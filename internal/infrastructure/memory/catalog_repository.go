package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var (
	_ repository.ItemRepository = (*ItemRepo)(nil)
	_ repository.UnitRepository = (*UnitRepo)(nil)
)

type ItemRepo struct {
	a access
}

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	return r.a.write(func(st *state) error {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.CreatedAt = time.Now().UTC()
		st.items[item.ID] = *item
		return nil
	})
}

func (r *ItemRepo) GetByIDs(_ context.Context, orgID string, ids []string) (map[string]*entity.Item, error) {
	out := make(map[string]*entity.Item, len(ids))
	r.a.read(func(st *state) {
		for _, id := range ids {
			if it, ok := st.items[id]; ok && it.OrganizationID == orgID {
				out[id] = &it
			}
		}
	})
	return out, nil
}

type UnitRepo struct {
	a access
}

func (r *UnitRepo) Create(_ context.Context, unit *entity.Unit) error {
	return r.a.write(func(st *state) error {
		if unit.ID == "" {
			unit.ID = uuid.New().String()
		}
		unit.CreatedAt = time.Now().UTC()
		st.units[unit.ID] = *unit
		return nil
	})
}

func (r *UnitRepo) GetByIDs(_ context.Context, orgID string, ids []string) (map[string]*entity.Unit, error) {
	out := make(map[string]*entity.Unit, len(ids))
	r.a.read(func(st *state) {
		for _, id := range ids {
			if u, ok := st.units[id]; ok && u.OrganizationID == orgID {
				out[id] = &u
			}
		}
	})
	return out, nil
}
