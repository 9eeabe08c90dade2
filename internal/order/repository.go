package order

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("order not found")

// Repository stores submitted orders.
type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id string) (Order, error)
	ListByIDs(ids []string) ([]Order, error)
}

// InMemoryRepository is used for tests and database-less deployments.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[string]Order)}
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[ord.ID] = ord
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ord, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

func (r *InMemoryRepository) ListByIDs(ids []string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0, len(ids))
	for _, id := range ids {
		if ord, ok := r.orders[id]; ok {
			out = append(out, ord)
		}
	}
	return out, nil
}
