package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/shoply/shoply-api/internal/domain/discount"
	"github.com/shoply/shoply-api/internal/domain/order"
)

type checkoutRequest struct {
	UserID       string `json:"userId" validate:"required"`
	DiscountCode string `json:"discountCode"`
}

// Checkout handles POST /checkout. Empty carts and invalid or already-used
// discount codes are client errors; in those cases nothing is mutated.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !h.bind(w, r, &req) {
		return
	}

	result, err := h.checkout.Checkout(r.Context(), req.UserID, req.DiscountCode)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			h.respondError(w, r, http.StatusBadRequest, "Cart is empty. Add items before checking out.")
		case errors.Is(err, discount.ErrInvalidCode):
			h.respondError(w, r, http.StatusBadRequest, "Invalid discount code: "+req.DiscountCode)
		case errors.Is(err, discount.ErrAlreadyUsed):
			h.respondError(w, r, http.StatusBadRequest, "Discount code "+req.DiscountCode+" has already been used.")
		default:
			h.internalError(w, r, err)
		}
		return
	}

	h.respondJSON(w, r, http.StatusOK, result)
}
