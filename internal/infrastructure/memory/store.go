// Package memory implementa los repositorios en memoria (STORE_DRIVER=memory, demos y tests).
// Las transacciones se serializan con un mutex y trabajan sobre una copia del estado que
// reemplaza al original solo si la función termina sin error.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
)

type state struct {
	shifts         map[string]entity.Shift
	orders         map[string]entity.SalesOrder
	orderItems     map[string][]entity.SalesOrderItem // por orderID, en orden de alta
	payments       []entity.Payment
	items          map[string]entity.InventoryItem
	movements      []entity.InventoryMovement
	products       map[string]entity.Product
	purchaseOrders map[string]entity.PurchaseOrder
	expenses       []entity.Expense
	categories     map[string]entity.ExpenseCategory
	patients       map[string]entity.Patient
	users          map[string]entity.User
}

func newState() *state {
	return &state{
		shifts:         make(map[string]entity.Shift),
		orders:         make(map[string]entity.SalesOrder),
		orderItems:     make(map[string][]entity.SalesOrderItem),
		items:          make(map[string]entity.InventoryItem),
		products:       make(map[string]entity.Product),
		purchaseOrders: make(map[string]entity.PurchaseOrder),
		categories:     make(map[string]entity.ExpenseCategory),
		patients:       make(map[string]entity.Patient),
		users:          make(map[string]entity.User),
	}
}

// clone copia superficial: los valores guardados nunca se mutan en sitio (copy-on-write),
// así que basta con duplicar mapas y slices.
func (s *state) clone() *state {
	return &state{
		shifts:         maps.Clone(s.shifts),
		orders:         maps.Clone(s.orders),
		orderItems:     maps.Clone(s.orderItems),
		payments:       append([]entity.Payment(nil), s.payments...),
		items:          maps.Clone(s.items),
		movements:      append([]entity.InventoryMovement(nil), s.movements...),
		products:       maps.Clone(s.products),
		purchaseOrders: maps.Clone(s.purchaseOrders),
		expenses:       append([]entity.Expense(nil), s.expenses...),
		categories:     maps.Clone(s.categories),
		patients:       maps.Clone(s.patients),
		users:          maps.Clone(s.users),
	}
}

// Store almacén en memoria. Implementa ports.TxRunner.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{state: newState()}
}

// Repositories devuelve repositorios fuera de transacción (cada llamada toma el lock).
func (s *Store) Repositories() repository.Repositories {
	return (&session{store: s}).repositories()
}

// Run ejecuta fn en exclusión mutua sobre una copia del estado; confirma si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	sess := &session{store: s, tx: work}
	if err := fn(sess.repositories()); err != nil {
		return err
	}
	s.state = work
	return nil
}

// session une repositorios a una transacción (tx != nil) o al estado vigente.
type session struct {
	store *Store
	tx    *state
}

// read devuelve el estado a leer y la función de liberación.
func (r *session) read() (*state, func()) {
	if r.tx != nil {
		return r.tx, func() {}
	}
	r.store.mu.RLock()
	return r.store.state, r.store.mu.RUnlock
}

// write fuera de transacción muta el estado vigente bajo lock exclusivo.
func (r *session) write() (*state, func()) {
	if r.tx != nil {
		return r.tx, func() {}
	}
	r.store.mu.Lock()
	return r.store.state, r.store.mu.Unlock
}

func (r *session) repositories() repository.Repositories {
	return repository.Repositories{
		Shifts:         &shiftRepo{r},
		Orders:         &orderRepo{r},
		Payments:       &paymentRepo{r},
		Items:          &itemRepo{r},
		Movements:      &movementRepo{r},
		Products:       &productRepo{r},
		PurchaseOrders: &purchaseOrderRepo{r},
		Expenses:       &expenseRepo{r},
		Patients:       &patientRepo{r},
		Users:          &userRepo{r},
	}
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
