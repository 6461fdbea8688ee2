package cart

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrInvalidQuantity is returned when an add request carries a non-positive
// quantity.
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// Line is a single cart entry. Name and Price are snapshotted from the
// catalog when the product is first added, so later catalog changes do not
// affect carts already holding the product.
type Line struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Cart is a user's current cart contents with the derived subtotal.
type Cart struct {
	Items    []Line `json:"items"`
	Subtotal int64  `json:"subtotal"`
}

// Repository defines persistence operations for per-user carts.
// A user without a cart is indistinguishable from a user with an empty one:
// Lines returns an empty slice, never an error, for unknown users.
type Repository interface {
	Lines(ctx context.Context, userID string) ([]Line, error)
	Save(ctx context.Context, userID string, lines []Line) error
	Clear(ctx context.Context, userID string) error
}

// Subtotal returns the sum of price*quantity over the given lines.
func Subtotal(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.Price * int64(l.Quantity)
	}
	return sum
}
