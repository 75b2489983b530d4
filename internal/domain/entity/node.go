package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// NodeType clasifica un nodo de inventario.
type NodeType string

const (
	NodeTypeWarehouse NodeType = "WAREHOUSE"
	NodeTypeLocation  NodeType = "LOCATION"
	NodeTypeSupplier  NodeType = "SUPPLIER"
	NodeTypeCustomer  NodeType = "CUSTOMER"
	NodeTypeAsset     NodeType = "ASSET"
	NodeTypeVirtual   NodeType = "VIRTUAL"
)

// NodeTypes lista los tipos admitidos en el orden de presentación.
var NodeTypes = []NodeType{
	NodeTypeWarehouse, NodeTypeLocation, NodeTypeSupplier,
	NodeTypeCustomer, NodeTypeAsset, NodeTypeVirtual,
}

// Valid indica si t es uno de los tipos admitidos.
func (t NodeType) Valid() bool {
	for _, v := range NodeTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParseNodeType normaliza s (mayúsculas, sin espacios) y lo valida.
func ParseNodeType(s string) (NodeType, error) {
	t := NodeType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", domain.ErrInvalidNodeType
	}
	return t, nil
}

// Tablas dueñas de los nodos respaldados por una entidad.
const (
	RefTableWarehouses = "warehouses"
	RefTableLocations  = "locations"
	RefTableSuppliers  = "suppliers"
	RefTableCustomers  = "customers"
	RefTableVirtual    = "virtual"
)

// Claves de los nodos virtuales que se aprovisionan por organización.
const (
	VirtualKeyExternal   = "EXTERNAL"
	VirtualKeyAdjustment = "ADJUSTMENT"
)

// NodeRef identifica el origen de un nodo: una fila de otra tabla o una clave virtual.
// Junto con la organización es la clave natural del nodo.
type NodeRef struct {
	Type  NodeType
	Table string
	ID    string
}

func WarehouseRef(id string) NodeRef {
	return NodeRef{Type: NodeTypeWarehouse, Table: RefTableWarehouses, ID: id}
}

func LocationRef(id string) NodeRef {
	return NodeRef{Type: NodeTypeLocation, Table: RefTableLocations, ID: id}
}

func SupplierRef(id string) NodeRef {
	return NodeRef{Type: NodeTypeSupplier, Table: RefTableSuppliers, ID: id}
}

func CustomerRef(id string) NodeRef {
	return NodeRef{Type: NodeTypeCustomer, Table: RefTableCustomers, ID: id}
}

// VirtualRef referencia un nodo sintético (EXTERNAL, ADJUSTMENT, ...).
func VirtualRef(key string) NodeRef {
	return NodeRef{Type: NodeTypeVirtual, Table: RefTableVirtual, ID: key}
}

// IsVirtual indica si la referencia no está respaldada por una entidad.
func (r NodeRef) IsVirtual() bool {
	return r.Table == RefTableVirtual
}

// Validate comprueba que la referencia esté completa y el tipo sea admitido.
func (r NodeRef) Validate() error {
	if !r.Type.Valid() {
		return domain.ErrInvalidNodeType
	}
	if strings.TrimSpace(r.Table) == "" || strings.TrimSpace(r.ID) == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// NodeMeta metadatos tipados del nodo (se persisten como jsonb).
// Extra es la vía de escape para atributos que no tienen campo propio.
type NodeMeta struct {
	Kind   string            `json:"kind,omitempty"`
	Active *bool             `json:"active,omitempty"`
	Email  string            `json:"email,omitempty"`
	Phone  string            `json:"phone,omitempty"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// Inactive indica si el origen marcó el nodo como inactivo de forma explícita.
func (m NodeMeta) Inactive() bool {
	return m.Active != nil && !*m.Active
}

// Node es la identidad uniforme de un extremo de stock dentro de una organización.
type Node struct {
	ID             string
	OrganizationID string
	Type           NodeType
	RefTable       string
	RefID          string
	Code           string
	Name           string
	IsStocked      bool
	Meta           NodeMeta
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Ref devuelve la referencia natural del nodo.
func (n *Node) Ref() NodeRef {
	return NodeRef{Type: n.Type, Table: n.RefTable, ID: n.RefID}
}

// NodeSource lo implementan las entidades que se reflejan en el registro de nodos.
type NodeSource interface {
	AsNode() *Node
}

func newSourceNode(orgID string, ref NodeRef, code, name string, stocked bool, meta NodeMeta) *Node {
	return &Node{
		OrganizationID: orgID,
		Type:           ref.Type,
		RefTable:       ref.Table,
		RefID:          ref.ID,
		Code:           code,
		Name:           name,
		IsStocked:      stocked,
		Meta:           meta,
	}
}

func boolPtr(b bool) *bool { return &b }
