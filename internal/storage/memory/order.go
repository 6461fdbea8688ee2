package memory

import (
	"context"

	"github.com/shoply/shoply-api/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements the append-only order log and the global order
// counter.
type OrderRepository struct {
	store *Store
}

// NewOrderRepository returns an OrderRepository backed by the given store.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// Append records the order and increments the order counter. Both happen
// under one lock acquisition: the log length and the counter can never be
// observed out of step.
func (r *OrderRepository) Append(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.orders = append(r.store.orders, *o)
	r.store.counter++
	return nil
}

// List returns a copy of the order log.
func (r *OrderRepository) List(_ context.Context) ([]order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]order.Order, len(r.store.orders))
	copy(out, r.store.orders)
	return out, nil
}

// Count returns the current value of the global order counter.
func (r *OrderRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.counter, nil
}
