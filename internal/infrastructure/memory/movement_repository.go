package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var (
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.BalanceReader      = (*MovementRepo)(nil)
)

// MovementRepo eventos y líneas en memoria; también resuelve la proyección de saldos.
type MovementRepo struct {
	a access
}

func (r *MovementRepo) CreateEvent(_ context.Context, e *entity.MovementEvent) error {
	return r.a.write(func(st *state) error {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		now := time.Now().UTC()
		e.CreatedAt, e.UpdatedAt = now, now
		st.events[e.ID] = *e
		return nil
	})
}

func (r *MovementRepo) GetEvent(_ context.Context, orgID, id string) (*entity.MovementEvent, error) {
	var out *entity.MovementEvent
	r.a.read(func(st *state) {
		if e, ok := st.events[id]; ok && e.OrganizationID == orgID {
			out = &e
		}
	})
	return out, nil
}

func (r *MovementRepo) UpdateDraftEvent(_ context.Context, e *entity.MovementEvent) error {
	return r.a.write(func(st *state) error {
		cur, ok := st.events[e.ID]
		if !ok || cur.OrganizationID != e.OrganizationID || cur.Status != entity.StatusDraft {
			return domain.ErrImmutable
		}
		e.CreatedAt = cur.CreatedAt
		e.CreatedBy = cur.CreatedBy
		e.UpdatedAt = time.Now().UTC()
		st.events[e.ID] = *e
		return nil
	})
}

func (r *MovementRepo) DeleteEvent(_ context.Context, orgID, id string) error {
	return r.a.write(func(st *state) error {
		if e, ok := st.events[id]; !ok || e.OrganizationID != orgID {
			return nil
		}
		for lid, l := range st.lines {
			if l.EventID == id {
				delete(st.lines, lid)
			}
		}
		delete(st.events, id)
		return nil
	})
}

func (r *MovementRepo) CreateLines(_ context.Context, lines []*entity.MovementLine) error {
	return r.a.write(func(st *state) error {
		for _, l := range lines {
			if _, ok := st.events[l.EventID]; !ok {
				return fmt.Errorf("insert movement line: event %s does not exist", l.EventID)
			}
			if l.FromNodeID == l.ToNodeID {
				return domain.ErrSameNode
			}
			if !l.Quantity.IsPositive() {
				return domain.ErrInvalidQuantity
			}
		}
		now := time.Now().UTC()
		for _, l := range lines {
			if l.ID == "" {
				l.ID = uuid.New().String()
			}
			l.CreatedAt, l.UpdatedAt = now, now
			st.lines[l.ID] = *l
		}
		return nil
	})
}

func (r *MovementRepo) GetLine(_ context.Context, orgID, id string) (*entity.MovementLine, error) {
	var out *entity.MovementLine
	r.a.read(func(st *state) {
		if l, ok := st.lines[id]; ok && l.OrganizationID == orgID {
			out = &l
		}
	})
	return out, nil
}

func (r *MovementRepo) ListLines(_ context.Context, orgID, eventID string) ([]*entity.MovementLine, error) {
	var list []*entity.MovementLine
	r.a.read(func(st *state) {
		for _, l := range st.lines {
			if l.EventID == eventID && l.OrganizationID == orgID {
				list = append(list, &l)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].LineNo < list[j].LineNo })
	return list, nil
}

func (r *MovementRepo) UpdateLine(_ context.Context, l *entity.MovementLine) error {
	return r.a.write(func(st *state) error {
		cur, ok := st.lines[l.ID]
		if !ok || cur.OrganizationID != l.OrganizationID {
			return domain.ErrNotFound
		}
		if l.FromNodeID == l.ToNodeID {
			return domain.ErrSameNode
		}
		l.EventID, l.LineNo, l.CreatedAt = cur.EventID, cur.LineNo, cur.CreatedAt
		l.UpdatedAt = time.Now().UTC()
		st.lines[l.ID] = *l
		return nil
	})
}

func (r *MovementRepo) DeleteLine(_ context.Context, orgID, id string) error {
	return r.a.write(func(st *state) error {
		l, ok := st.lines[id]
		if !ok || l.OrganizationID != orgID {
			return domain.ErrNotFound
		}
		if st.events[l.EventID].Status != entity.StatusDraft {
			return domain.ErrImmutable
		}
		delete(st.lines, id)
		return nil
	})
}

func (r *MovementRepo) CountLines(_ context.Context, eventID string) (int, error) {
	n := 0
	r.a.read(func(st *state) {
		for _, l := range st.lines {
			if l.EventID == eventID {
				n++
			}
		}
	})
	return n, nil
}

func (r *MovementRepo) ListRecent(_ context.Context, orgID string, limit int) ([]*entity.MovementView, error) {
	var list []*entity.MovementView
	r.a.read(func(st *state) {
		for _, l := range st.lines {
			if l.OrganizationID != orgID {
				continue
			}
			e := st.events[l.EventID]
			from, to := st.nodes[l.FromNodeID], st.nodes[l.ToNodeID]
			item, unit := st.items[l.ItemID], st.units[l.UnitID]
			list = append(list, &entity.MovementView{
				Line:          l,
				EventType:     e.EventType,
				Status:        e.Status,
				OccurredAt:    e.OccurredAt,
				ReferenceType: e.ReferenceType,
				ReferenceID:   e.ReferenceID,
				Note:          e.Note,
				FromNodeName:  from.Name,
				FromNodeType:  from.Type,
				ToNodeName:    to.Name,
				ToNodeType:    to.Type,
				ItemCode:      item.Code,
				ItemName:      item.Name,
				UnitCode:      unit.Code,
			})
		}
	})
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.OccurredAt.Equal(b.OccurredAt) {
			return a.OccurredAt.After(b.OccurredAt)
		}
		return a.Line.ID > b.Line.ID
	})
	return page(list, limit, 0), nil
}

func (r *MovementRepo) Balances(_ context.Context, orgID string, f entity.BalanceFilter) ([]*entity.BalanceRow, error) {
	statuses := f.Statuses
	if len(statuses) == 0 {
		statuses = []entity.MovementStatus{entity.StatusPosted}
	}
	var rows []*entity.BalanceRow
	r.a.read(func(st *state) {
		var lines []*entity.MovementLine
		for _, l := range st.lines {
			if l.OrganizationID != orgID {
				continue
			}
			e := st.events[l.EventID]
			if !statusIn(e.Status, statuses) || !inRange(e.OccurredAt, f.From, f.To) {
				continue
			}
			lines = append(lines, &l)
		}
		for k, qty := range inventory.Aggregate(lines, inventory.NewPostingFilter(f.NodeIDs, f.ItemIDs)) {
			n, item := st.nodes[k.NodeID], st.items[k.ItemID]
			rows = append(rows, &entity.BalanceRow{
				NodeID:   k.NodeID,
				NodeType: n.Type,
				NodeCode: n.Code,
				NodeName: n.Name,
				ItemID:   k.ItemID,
				ItemCode: item.Code,
				ItemName: item.Name,
				UnitCode: st.units[item.UnitID].Code,
				Quantity: qty,
			})
		}
	})
	inventory.SortBalances(rows)
	return rows, nil
}

func statusIn(s entity.MovementStatus, list []entity.MovementStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
