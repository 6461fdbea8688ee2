package order

import (
	"context"
	"time"

	"github.com/shoply/shoply-api/internal/domain/cart"
)

// Order is an immutable record of a completed checkout. Items hold the cart
// snapshot taken at checkout time; Subtotal, DiscountAmount, and Total are
// minor currency units.
type Order struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	Items          []cart.Line `json:"items"`
	Subtotal       int64       `json:"subtotal"`
	DiscountCode   string      `json:"discountCode,omitempty"`
	DiscountAmount int64       `json:"discountAmount"`
	Total          int64       `json:"total"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// Repository is the append-only order log plus the global order counter.
// Append must record the order and increment the counter as one atomic step.
type Repository interface {
	Append(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
	Count(ctx context.Context) (int, error)
}
