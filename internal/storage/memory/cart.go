package memory

import (
	"context"

	"github.com/shoply/shoply-api/internal/domain/cart"
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository over the store's cart map.
type CartRepository struct {
	store *Store
}

// NewCartRepository returns a CartRepository backed by the given store.
func NewCartRepository(store *Store) *CartRepository {
	return &CartRepository{store: store}
}

// Lines returns a copy of the user's cart lines. Unknown users yield an
// empty slice.
func (r *CartRepository) Lines(_ context.Context, userID string) ([]cart.Line, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lines := r.store.carts[userID]
	out := make([]cart.Line, len(lines))
	copy(out, lines)
	return out, nil
}

// Save replaces the user's cart with the given lines. An empty slice keeps
// an (empty) cart around; use Clear to drop it.
func (r *CartRepository) Save(_ context.Context, userID string, lines []cart.Line) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored := make([]cart.Line, len(lines))
	copy(stored, lines)
	r.store.carts[userID] = stored
	return nil
}

// Clear deletes the user's cart entirely.
func (r *CartRepository) Clear(_ context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.carts, userID)
	return nil
}
