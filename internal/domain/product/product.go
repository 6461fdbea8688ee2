package product

import "context"

// Product represents a catalog item available for purchase. The catalog is
// seeded at startup and read-only afterwards.
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Price is expressed in minor currency units (cents) to keep all
	// monetary arithmetic in integers.
	Price int64 `json:"price"`
}

// NotFoundError indicates a requested product does not exist in the catalog.
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return "product not found: " + e.ProductID
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}
