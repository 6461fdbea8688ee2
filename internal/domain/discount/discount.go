package discount

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// Status tracks whether a discount code has been redeemed. The state machine
// is one-way: unused -> used, with no other transitions.
type Status string

const (
	StatusUnused Status = "unused"
	StatusUsed   Status = "used"
)

var (
	// ErrInvalidCode is returned when a discount code does not exist.
	ErrInvalidCode = errors.New("invalid discount code")
	// ErrAlreadyUsed is returned when a discount code has been redeemed before.
	ErrAlreadyUsed = errors.New("discount code already used")
)

// Code is a single-use discount code minted when the global order counter
// reaches a milestone (an exact multiple of the configured interval).
// Milestone records which counter value the code was issued for; issuance is
// suppressed when a code for that milestone already exists, which keeps
// generation idempotent even if the counter is ever observed out of order.
type Code struct {
	Code      string     `json:"code"`
	Percent   int        `json:"discountPercent"`
	Milestone int        `json:"milestone"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
}

// Repository provides storage for discount codes. InsertIfAbsent and Consume
// must each be atomic: the lookup and the mutation happen as one indivisible
// step, so a milestone can never mint twice and a code can never be redeemed
// twice under concurrent requests.
type Repository interface {
	// InsertIfAbsent stores code unless the ledger already holds one for the
	// same milestone. It reports whether the code was stored.
	InsertIfAbsent(ctx context.Context, code *Code) (bool, error)
	Consume(ctx context.Context, code string, usedAt time.Time) (*Code, error)
	List(ctx context.Context) ([]Code, error)
}
