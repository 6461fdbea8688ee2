// Package analytics aggregates the order log and the discount ledger into
// the admin reporting view. Everything here is a pure computation over
// snapshots; nothing is cached or mutated.
package analytics

import (
	"github.com/shoply/shoply-api/internal/domain/discount"
	"github.com/shoply/shoply-api/internal/domain/order"
)

// Stats is the aggregated admin view over all recorded orders and codes.
type Stats struct {
	TotalItemsPurchased int       `json:"totalItemsPurchased"`
	TotalRevenue        int64     `json:"totalRevenue"`
	TotalDiscountAmount int64     `json:"totalDiscountAmount"`
	TotalOrders         int       `json:"totalOrders"`
	DiscountCodes       CodeStats `json:"discountCodes"`
}

// CodeStats summarizes the discount ledger. Total = Used + Unused always
// holds since codes are never deleted and have exactly two states.
type CodeStats struct {
	Total  int             `json:"total"`
	Used   int             `json:"used"`
	Unused int             `json:"unused"`
	Codes  []discount.Code `json:"codes"`
}

// Compute recomputes the stats from scratch. Orders are bounded by a single
// process lifetime, so a full pass per call is fine.
func Compute(orders []order.Order, codes []discount.Code) Stats {
	s := Stats{
		TotalOrders: len(orders),
	}
	for _, o := range orders {
		for _, item := range o.Items {
			s.TotalItemsPurchased += item.Quantity
		}
		s.TotalRevenue += o.Total
		s.TotalDiscountAmount += o.DiscountAmount
	}

	if codes == nil {
		codes = []discount.Code{}
	}
	used := 0
	for _, c := range codes {
		if c.Status == discount.StatusUsed {
			used++
		}
	}
	s.DiscountCodes = CodeStats{
		Total:  len(codes),
		Used:   used,
		Unused: len(codes) - used,
		Codes:  codes,
	}
	return s
}
