package discount

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementation ---

type mockDiscountRepo struct {
	codes []Code
}

func (m *mockDiscountRepo) InsertIfAbsent(_ context.Context, code *Code) (bool, error) {
	for i := range m.codes {
		if m.codes[i].Milestone == code.Milestone {
			return false, nil
		}
	}
	m.codes = append(m.codes, *code)
	return true, nil
}

func (m *mockDiscountRepo) Consume(_ context.Context, code string, usedAt time.Time) (*Code, error) {
	for i := range m.codes {
		if m.codes[i].Code != code {
			continue
		}
		if m.codes[i].Status == StatusUsed {
			return nil, ErrAlreadyUsed
		}
		m.codes[i].Status = StatusUsed
		m.codes[i].UsedAt = &usedAt
		c := m.codes[i]
		return &c, nil
	}
	return nil, ErrInvalidCode
}

func (m *mockDiscountRepo) List(_ context.Context) ([]Code, error) {
	return append([]Code(nil), m.codes...), nil
}

// --- Tests ---

func TestAmount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		percent  int
		want     int64
	}{
		{"ten percent of 10997 rounds up", 10997, 10, 1100},
		{"exact division", 10000, 10, 1000},
		{"rounds down below half", 10004, 10, 1000},
		{"rounds up at half", 10005, 10, 1001},
		{"zero percent", 10997, 0, 0},
		{"full discount", 10997, 100, 10997},
		{"zero subtotal", 0, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(tt.subtotal, tt.percent))
		})
	}
}

func TestGenerate_NotOnMilestone(t *testing.T) {
	ledger := NewLedger(&mockDiscountRepo{}, 5, 10)

	for _, count := range []int{0, 1, 4, 6, 9, 11} {
		code, err := ledger.Generate(context.Background(), count)
		require.NoError(t, err)
		assert.Nil(t, code, "orderCount=%d", count)
	}
}

func TestGenerate_OnMilestone(t *testing.T) {
	ledger := NewLedger(&mockDiscountRepo{}, 5, 10)

	code, err := ledger.Generate(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, code)

	assert.Len(t, code.Code, 8)
	assert.Equal(t, 10, code.Percent)
	assert.Equal(t, 1, code.Milestone)
	assert.Equal(t, StatusUnused, code.Status)
	assert.False(t, code.CreatedAt.IsZero())
	assert.Nil(t, code.UsedAt)
}

func TestGenerate_IdempotentAtSameCount(t *testing.T) {
	ledger := NewLedger(&mockDiscountRepo{}, 5, 10)
	ctx := context.Background()

	first, err := ledger.Generate(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := ledger.Generate(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, second, "repeated generation at the same counter value")

	codes, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, codes, 1)
}

func TestGenerate_NewMilestoneMintsAgain(t *testing.T) {
	ledger := NewLedger(&mockDiscountRepo{}, 5, 10)
	ctx := context.Background()

	first, err := ledger.Generate(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := ledger.Generate(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, 2, second.Milestone)
	assert.NotEqual(t, first.Code, second.Code)
}

func TestConsume_ExactlyOnce(t *testing.T) {
	ledger := NewLedger(&mockDiscountRepo{}, 5, 10)
	ctx := context.Background()

	minted, err := ledger.Generate(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, minted)

	used, err := ledger.Consume(ctx, minted.Code)
	require.NoError(t, err)
	assert.Equal(t, StatusUsed, used.Status)
	require.NotNil(t, used.UsedAt)

	_, err = ledger.Consume(ctx, minted.Code)
	require.ErrorIs(t, err, ErrAlreadyUsed)
}

func TestConsume_UnknownCode(t *testing.T) {
	ledger := NewLedger(&mockDiscountRepo{}, 5, 10)

	_, err := ledger.Consume(context.Background(), "BOGUS123")
	require.ErrorIs(t, err, ErrInvalidCode)
}
