package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.NodeRepository = (*NodeRepo)(nil)

// NodeRepo registro de nodos en memoria.
type NodeRepo struct {
	a access
}

func findNodeByRef(st *state, orgID string, ref entity.NodeRef) (entity.Node, bool) {
	for _, n := range st.nodes {
		if n.OrganizationID == orgID && n.Type == ref.Type && n.RefTable == ref.Table && n.RefID == ref.ID {
			return n, true
		}
	}
	return entity.Node{}, false
}

func (r *NodeRepo) Upsert(_ context.Context, n *entity.Node) error {
	return r.a.write(func(st *state) error {
		now := time.Now().UTC()
		if existing, ok := findNodeByRef(st, n.OrganizationID, n.Ref()); ok {
			n.ID = existing.ID
			n.CreatedAt = existing.CreatedAt
		} else {
			n.ID = uuid.New().String()
			n.CreatedAt = now
		}
		n.UpdatedAt = now
		st.nodes[n.ID] = *n
		return nil
	})
}

func (r *NodeRepo) Create(_ context.Context, n *entity.Node) error {
	return r.a.write(func(st *state) error {
		if _, ok := findNodeByRef(st, n.OrganizationID, n.Ref()); ok {
			return domain.ErrDuplicate
		}
		now := time.Now().UTC()
		n.ID = uuid.New().String()
		n.CreatedAt, n.UpdatedAt = now, now
		st.nodes[n.ID] = *n
		return nil
	})
}

func (r *NodeRepo) GetByID(_ context.Context, orgID, id string) (*entity.Node, error) {
	var out *entity.Node
	r.a.read(func(st *state) {
		if n, ok := st.nodes[id]; ok && n.OrganizationID == orgID {
			out = &n
		}
	})
	return out, nil
}

func (r *NodeRepo) GetByIDs(_ context.Context, orgID string, ids []string) (map[string]*entity.Node, error) {
	out := make(map[string]*entity.Node, len(ids))
	r.a.read(func(st *state) {
		for _, id := range ids {
			if n, ok := st.nodes[id]; ok && n.OrganizationID == orgID {
				out[id] = &n
			}
		}
	})
	return out, nil
}

func (r *NodeRepo) FindByRef(_ context.Context, orgID string, ref entity.NodeRef) (*entity.Node, error) {
	var out *entity.Node
	r.a.read(func(st *state) {
		if n, ok := findNodeByRef(st, orgID, ref); ok {
			out = &n
		}
	})
	return out, nil
}

func (r *NodeRepo) ListByOrganization(_ context.Context, orgID string, types []entity.NodeType) ([]*entity.Node, error) {
	want := make(map[entity.NodeType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var list []*entity.Node
	r.a.read(func(st *state) {
		for _, n := range st.nodes {
			if n.OrganizationID != orgID {
				continue
			}
			if len(want) > 0 && !want[n.Type] {
				continue
			}
			list = append(list, &n)
		}
	})
	inventory.SortNodes(list)
	return list, nil
}

func nodeReferenced(st *state, nodeID string) bool {
	for _, l := range st.lines {
		if l.FromNodeID == nodeID || l.ToNodeID == nodeID {
			return true
		}
	}
	return false
}

func (r *NodeRepo) IsReferenced(_ context.Context, nodeID string) (bool, error) {
	var used bool
	r.a.read(func(st *state) { used = nodeReferenced(st, nodeID) })
	return used, nil
}

func (r *NodeRepo) Delete(_ context.Context, orgID, id string) error {
	return r.a.write(func(st *state) error {
		n, ok := st.nodes[id]
		if !ok || n.OrganizationID != orgID {
			return nil
		}
		if nodeReferenced(st, id) {
			return domain.ErrNodeInUse
		}
		delete(st.nodes, id)
		return nil
	})
}
