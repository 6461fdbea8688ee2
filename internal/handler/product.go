package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/shoply/shoply-api/internal/domain/product"
)

// ListProducts handles GET /products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if products == nil {
		products = []product.Product{}
	}

	h.respondJSON(w, r, http.StatusOK, products)
}

// GetProduct handles GET /products/{productId}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		var nfErr *product.NotFoundError
		if errors.As(err, &nfErr) {
			h.respondError(w, r, http.StatusNotFound, nfErr.Error())
			return
		}
		h.internalError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, p)
}
