package memory

import (
	"context"
	"time"

	"github.com/shoply/shoply-api/internal/domain/discount"
)

var _ discount.Repository = (*DiscountRepository)(nil)

// DiscountRepository implements the discount ledger.
type DiscountRepository struct {
	store *Store
}

// NewDiscountRepository returns a DiscountRepository backed by the given store.
func NewDiscountRepository(store *Store) *DiscountRepository {
	return &DiscountRepository{store: store}
}

// InsertIfAbsent appends a freshly minted code unless the ledger already
// holds one for the same milestone. Lookup and append run under one lock
// acquisition, so concurrent generation at a milestone mints at most once.
func (r *DiscountRepository) InsertIfAbsent(_ context.Context, code *discount.Code) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.codes {
		if r.store.codes[i].Milestone == code.Milestone {
			return false, nil
		}
	}
	r.store.codes = append(r.store.codes, *code)
	return true, nil
}

// Consume transitions a code from unused to used. Lookup and mutation run
// under one lock acquisition, so a code observed as unused here is redeemed
// by this call and no other.
func (r *DiscountRepository) Consume(_ context.Context, code string, usedAt time.Time) (*discount.Code, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.codes {
		if r.store.codes[i].Code != code {
			continue
		}
		if r.store.codes[i].Status == discount.StatusUsed {
			return nil, discount.ErrAlreadyUsed
		}
		r.store.codes[i].Status = discount.StatusUsed
		r.store.codes[i].UsedAt = &usedAt
		c := r.store.codes[i]
		return &c, nil
	}
	return nil, discount.ErrInvalidCode
}

// List returns a copy of the full ledger.
func (r *DiscountRepository) List(_ context.Context) ([]discount.Code, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]discount.Code, len(r.store.codes))
	copy(out, r.store.codes)
	return out, nil
}
