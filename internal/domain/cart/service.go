package cart

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/shoply/shoply-api/internal/domain/product"
)

// Service implements cart mutations on top of the catalog and the cart
// repository. All operations are scoped to a single user id.
type Service struct {
	products product.Repository
	carts    Repository
}

// NewService creates a cart Service with the required dependencies.
func NewService(products product.Repository, carts Repository) *Service {
	return &Service{
		products: products,
		carts:    carts,
	}
}

// Add puts quantity units of the given product into the user's cart,
// creating the cart on first use. An existing line for the product
// accumulates quantity; a new line snapshots the product's current name and
// price. It returns the full cart line list after the mutation.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) ([]Line, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}

	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  quantity,
		})
	}

	if err := s.carts.Save(ctx, userID, lines); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return lines, nil
}

// Remove decrements the quantity of the given product by one, dropping the
// line entirely when it reaches zero. Removing from a missing cart or a
// missing line is a no-op that returns the current state.
func (s *Service) Remove(ctx context.Context, userID, productID string) ([]Line, error) {
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}

	idx := -1
	for i := range lines {
		if lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return lines, nil
	}

	lines[idx].Quantity--
	if lines[idx].Quantity <= 0 {
		lines = append(lines[:idx], lines[idx+1:]...)
	}

	if err := s.carts.Save(ctx, userID, lines); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return lines, nil
}

// Get returns the user's cart with a freshly computed subtotal. Unknown
// users get an empty cart, not an error.
func (s *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	if lines == nil {
		lines = []Line{}
	}
	return &Cart{
		Items:    lines,
		Subtotal: Subtotal(lines),
	}, nil
}

// Clear deletes the user's cart entirely. Called by checkout after an order
// has been recorded.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}
