package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shoply/shoply-api/internal/domain/cart"
	"github.com/shoply/shoply-api/internal/domain/discount"
	"github.com/shoply/shoply-api/internal/domain/order"
)

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, nil)

	assert.Zero(t, s.TotalItemsPurchased)
	assert.Zero(t, s.TotalRevenue)
	assert.Zero(t, s.TotalDiscountAmount)
	assert.Zero(t, s.TotalOrders)
	assert.Zero(t, s.DiscountCodes.Total)
	assert.NotNil(t, s.DiscountCodes.Codes)
}

func TestCompute_Aggregates(t *testing.T) {
	now := time.Now()
	orders := []order.Order{
		{
			ID:     "o1",
			UserID: "u1",
			Items: []cart.Line{
				{ProductID: "p1", Price: 2999, Quantity: 2},
				{ProductID: "p3", Price: 4999, Quantity: 1},
			},
			Subtotal:  10997,
			Total:     10997,
			CreatedAt: now,
		},
		{
			ID:     "o2",
			UserID: "u2",
			Items: []cart.Line{
				{ProductID: "p2", Price: 7999, Quantity: 3},
			},
			Subtotal:       23997,
			DiscountCode:   "ABCD1234",
			DiscountAmount: 2400,
			Total:          21597,
			CreatedAt:      now,
		},
	}
	usedAt := now
	codes := []discount.Code{
		{Code: "ABCD1234", Percent: 10, Milestone: 1, Status: discount.StatusUsed, CreatedAt: now, UsedAt: &usedAt},
		{Code: "EF567890", Percent: 10, Milestone: 2, Status: discount.StatusUnused, CreatedAt: now},
	}

	s := Compute(orders, codes)

	assert.Equal(t, 6, s.TotalItemsPurchased)
	assert.Equal(t, int64(10997+21597), s.TotalRevenue)
	assert.Equal(t, int64(2400), s.TotalDiscountAmount)
	assert.Equal(t, 2, s.TotalOrders)

	assert.Equal(t, 2, s.DiscountCodes.Total)
	assert.Equal(t, 1, s.DiscountCodes.Used)
	assert.Equal(t, 1, s.DiscountCodes.Unused)
	assert.Len(t, s.DiscountCodes.Codes, 2)
}

func TestCompute_UsedPlusUnusedEqualsTotal(t *testing.T) {
	now := time.Now()
	var codes []discount.Code
	for i := range 7 {
		status := discount.StatusUnused
		if i%3 == 0 {
			status = discount.StatusUsed
		}
		codes = append(codes, discount.Code{Code: "C", Milestone: i + 1, Status: status, CreatedAt: now})
	}

	s := Compute(nil, codes)
	assert.Equal(t, s.DiscountCodes.Total, s.DiscountCodes.Used+s.DiscountCodes.Unused)
}

func TestCompute_RevenueIsSumOfTotals(t *testing.T) {
	orders := []order.Order{
		{ID: "o1", Total: 100, DiscountAmount: 10},
		{ID: "o2", Total: 250},
		{ID: "o3", Total: 9897, DiscountAmount: 1100},
	}

	s := Compute(orders, nil)
	assert.Equal(t, int64(100+250+9897), s.TotalRevenue)
	assert.Equal(t, int64(1110), s.TotalDiscountAmount)
}
