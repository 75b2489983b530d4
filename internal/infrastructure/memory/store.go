// Package memory implementa los repositorios en memoria (desarrollo y tests).
// Las transacciones trabajan sobre una copia del estado y la publican al confirmar,
// de modo que un error en medio de la transacción no deja cambios visibles.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	nodes      map[string]entity.Node
	events     map[string]entity.MovementEvent
	lines      map[string]entity.MovementLine
	items      map[string]entity.Item
	units      map[string]entity.Unit
	warehouses map[string]entity.Warehouse
	locations  map[string]entity.Location
	suppliers  map[string]entity.Supplier
	customers  map[string]entity.Customer
}

func newState() *state {
	return &state{
		nodes:      map[string]entity.Node{},
		events:     map[string]entity.MovementEvent{},
		lines:      map[string]entity.MovementLine{},
		items:      map[string]entity.Item{},
		units:      map[string]entity.Unit{},
		warehouses: map[string]entity.Warehouse{},
		locations:  map[string]entity.Location{},
		suppliers:  map[string]entity.Supplier{},
		customers:  map[string]entity.Customer{},
	}
}

func (s *state) clone() *state {
	return &state{
		nodes:      cloneMap(s.nodes),
		events:     cloneMap(s.events),
		lines:      cloneMap(s.lines),
		items:      cloneMap(s.items),
		units:      cloneMap(s.units),
		warehouses: cloneMap(s.warehouses),
		locations:  cloneMap(s.locations),
		suppliers:  cloneMap(s.suppliers),
		customers:  cloneMap(s.customers),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// access abstrae si los repositorios operan sobre el estado publicado o sobre la copia de una tx.
type access interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

// Store estado compartido. txMu serializa escrituras y transacciones; mu protege el puntero al estado.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Repositories devuelve repositorios sobre el estado publicado (fuera de transacción).
func (s *Store) Repositories() ports.Repositories {
	return repositoriesFor(s)
}

// Run ejecuta fn sobre una copia privada del estado y la publica solo si fn no falla.
// No se debe usar Repositories() dentro de fn: las escrituras fuera de la tx esperan a que termine.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(repositoriesFor(&txAccess{st: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

type txAccess struct {
	st *state
}

func (t *txAccess) read(fn func(st *state)) {
	fn(t.st)
}

func (t *txAccess) write(fn func(st *state) error) error {
	return fn(t.st)
}

func repositoriesFor(a access) ports.Repositories {
	movements := &MovementRepo{a: a}
	return ports.Repositories{
		Nodes:      &NodeRepo{a: a},
		Movements:  movements,
		Balances:   movements,
		Items:      &ItemRepo{a: a},
		Units:      &UnitRepo{a: a},
		Warehouses: &WarehouseRepo{a: a},
		Locations:  &LocationRepo{a: a},
		Suppliers:  &SupplierRepo{a: a},
		Customers:  &CustomerRepo{a: a},
	}
}

// page aplica limit/offset a una lista ya ordenada.
func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
