package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/shoply/shoply-api/internal/domain/cart"
	"github.com/shoply/shoply-api/internal/domain/product"
)

type addToCartRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type removeFromCartRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
}

type cartResponse struct {
	Message string      `json:"message"`
	Cart    []cart.Line `json:"cart"`
}

// AddToCart handles POST /cart/add.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !h.bind(w, r, &req) {
		return
	}

	lines, err := h.carts.Add(r.Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		var nfErr *product.NotFoundError
		switch {
		case errors.As(err, &nfErr):
			h.respondError(w, r, http.StatusBadRequest, nfErr.Error())
		case errors.Is(err, cart.ErrInvalidQuantity):
			h.respondError(w, r, http.StatusBadRequest, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	h.respondJSON(w, r, http.StatusOK, cartResponse{
		Message: "Item added to cart",
		Cart:    lines,
	})
}

// RemoveFromCart handles POST /cart/remove. Removing an absent line is a
// no-op that still returns the current cart.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req removeFromCartRequest
	if !h.bind(w, r, &req) {
		return
	}

	lines, err := h.carts.Remove(r.Context(), req.UserID, req.ProductID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if lines == nil {
		lines = []cart.Line{}
	}

	h.respondJSON(w, r, http.StatusOK, cartResponse{
		Message: "Item removed from cart",
		Cart:    lines,
	})
}

// GetCart handles GET /cart/{userId}. Unknown users get an empty cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	c, err := h.carts.Get(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, c)
}
