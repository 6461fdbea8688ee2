package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/shoply/shoply-api/internal/domain/cart"
	"github.com/shoply/shoply-api/internal/domain/discount"
)

// ErrEmptyCart is returned when checkout is attempted on an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutResult holds the recorded order and a human-readable summary.
type CheckoutResult struct {
	Order   *Order `json:"order"`
	Message string `json:"message"`
}

// Service is the checkout orchestrator: it snapshots the cart, redeems the
// optional discount code, records the order, advances the order counter, and
// clears the cart.
type Service struct {
	carts     *cart.Service
	discounts *discount.Ledger
	orders    Repository
	now       func() time.Time
}

// NewService creates a checkout Service with the required dependencies.
func NewService(carts *cart.Service, discounts *discount.Ledger, orders Repository) *Service {
	return &Service{
		carts:     carts,
		discounts: discounts,
		orders:    orders,
		now:       time.Now,
	}
}

// Checkout places an order for the user's current cart, applying code when
// one is given.
//
// The discount code is redeemed before the order is appended: a failed
// redemption aborts checkout with the cart, ledger, and counter untouched.
// The counter increment happens together with the append, after redemption,
// so an order's own increment can make the next milestone reachable but
// never affects that order's discount.
func (s *Service) Checkout(ctx context.Context, userID, code string) (*CheckoutResult, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get cart")
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var discountAmount int64
	appliedCode := ""
	if code != "" {
		dc, err := s.discounts.Consume(ctx, code)
		if err != nil {
			return nil, err
		}
		discountAmount = discount.Amount(c.Subtotal, dc.Percent)
		appliedCode = dc.Code
	}

	o := &Order{
		ID:             uuid.New().String(),
		UserID:         userID,
		Items:          append([]cart.Line(nil), c.Items...),
		Subtotal:       c.Subtotal,
		DiscountCode:   appliedCode,
		DiscountAmount: discountAmount,
		Total:          c.Subtotal - discountAmount,
		CreatedAt:      s.now(),
	}
	if err := s.orders.Append(ctx, o); err != nil {
		return nil, errors.Wrap(err, "append order")
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		return nil, errors.Wrap(err, "clear cart")
	}

	message := "Order placed successfully!"
	if discountAmount > 0 {
		message = fmt.Sprintf("Order placed! You saved %d with code %q.", discountAmount, appliedCode)
	}
	return &CheckoutResult{
		Order:   o,
		Message: message,
	}, nil
}
