package memory

import (
	"context"

	"github.com/shoply/shoply-api/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository over the store's catalog.
type ProductRepository struct {
	store *Store
}

// NewProductRepository returns a ProductRepository backed by the given store.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// List returns the full catalog.
func (r *ProductRepository) List(_ context.Context) ([]product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]product.Product, len(r.store.products))
	copy(out, r.store.products)
	return out, nil
}

// GetByID looks up a single product. Returns *product.NotFoundError for
// unknown ids.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.products {
		if r.store.products[i].ID == id {
			p := r.store.products[i]
			return &p, nil
		}
	}
	return nil, &product.NotFoundError{ProductID: id}
}
