package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shoply/shoply-api/internal/analytics"
	"github.com/shoply/shoply-api/internal/domain/discount"
)

type generateDiscountResponse struct {
	Message  string         `json:"message"`
	Discount *discount.Code `json:"discount"`
}

type notEligibleResponse struct {
	Message    string `json:"message"`
	OrderCount int    `json:"orderCount"`
	NthOrder   int    `json:"nthOrder"`
	Hint       string `json:"hint"`
}

// GenerateDiscount handles POST /admin/generate-discount. It mints a code
// when the order counter sits on an unclaimed milestone (201) and reports
// the next eligible order otherwise (200). Repeated calls at the same
// counter value mint at most one code.
func (h *Handler) GenerateDiscount(w http.ResponseWriter, r *http.Request) {
	count, err := h.orders.Count(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	code, err := h.discounts.Generate(r.Context(), count)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	if code == nil {
		nth := h.discounts.NthOrder()
		h.respondJSON(w, r, http.StatusOK, notEligibleResponse{
			Message:    "No discount code generated. Condition not met.",
			OrderCount: count,
			NthOrder:   nth,
			Hint:       fmt.Sprintf("Next eligible at order #%d", (count/nth+1)*nth),
		})
		return
	}

	h.respondJSON(w, r, http.StatusCreated, generateDiscountResponse{
		Message:  "Discount code generated!",
		Discount: code,
	})
}

// Stats handles GET /admin/stats, recomputing the analytics view from the
// current order log and discount ledger.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	codes, err := h.discounts.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, analytics.Compute(orders, codes))
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
