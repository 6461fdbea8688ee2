package discount

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Amount returns the discount for the given subtotal and percent, both in
// minor currency units. The single rounding step uses decimal arithmetic,
// half away from zero, so e.g. 10% of 10997 yields 1100.
func Amount(subtotal int64, percent int) int64 {
	return decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(int64(percent))).
		Div(hundred).
		Round(0).
		IntPart()
}

// Ledger issues milestone discount codes and redeems them exactly once.
type Ledger struct {
	repo     Repository
	nthOrder int
	percent  int
	now      func() time.Time
}

// NewLedger creates a Ledger minting codes worth percent at every nthOrder
// orders.
func NewLedger(repo Repository, nthOrder, percent int) *Ledger {
	return &Ledger{
		repo:     repo,
		nthOrder: nthOrder,
		percent:  percent,
		now:      time.Now,
	}
}

// NthOrder reports the configured milestone interval.
func (l *Ledger) NthOrder() int {
	return l.nthOrder
}

// Generate mints a new code when orderCount sits exactly on a milestone that
// has no code yet. It returns (nil, nil) when the counter is not on a
// milestone or the milestone's code was already issued, so repeated calls at
// the same counter value mint at most one code.
func (l *Ledger) Generate(ctx context.Context, orderCount int) (*Code, error) {
	if orderCount <= 0 || orderCount%l.nthOrder != 0 {
		return nil, nil
	}

	code := &Code{
		Code:      newCode(),
		Percent:   l.percent,
		Milestone: orderCount / l.nthOrder,
		Status:    StatusUnused,
		CreatedAt: l.now(),
	}
	minted, err := l.repo.InsertIfAbsent(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "insert code")
	}
	if !minted {
		return nil, nil
	}
	return code, nil
}

// Consume redeems a code, transitioning it from unused to used. It returns
// ErrInvalidCode for unknown codes and ErrAlreadyUsed for redeemed ones; in
// both cases the ledger is left untouched.
func (l *Ledger) Consume(ctx context.Context, code string) (*Code, error) {
	return l.repo.Consume(ctx, code, l.now())
}

// List returns every code ever issued, used and unused alike. Codes are
// never deleted, which keeps the used/unused split available for analytics.
func (l *Ledger) List(ctx context.Context) ([]Code, error) {
	return l.repo.List(ctx)
}

// newCode mints a short opaque token: the first eight hex digits of a UUID,
// uppercased. Uniqueness is all that matters here, not the format.
func newCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}
