// Package handler exposes the HTTP API: cart mutations, checkout, the admin
// discount/analytics surface, and the product catalog. Handlers stay thin;
// all business rules live in the domain services.
package handler

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shoply/shoply-api/internal/domain/cart"
	"github.com/shoply/shoply-api/internal/domain/discount"
	"github.com/shoply/shoply-api/internal/domain/order"
	"github.com/shoply/shoply-api/internal/domain/product"
)

// Handler holds the domain dependencies for all HTTP endpoints.
type Handler struct {
	products  product.Repository
	carts     *cart.Service
	checkout  *order.Service
	discounts *discount.Ledger
	orders    order.Repository
	validate  *validator.Validate
}

// New constructs a Handler with the required domain dependencies.
func New(
	products product.Repository,
	carts *cart.Service,
	checkout *order.Service,
	discounts *discount.Ledger,
	orders order.Repository,
) *Handler {
	return &Handler{
		products:  products,
		carts:     carts,
		checkout:  checkout,
		discounts: discounts,
		orders:    orders,
		validate:  newValidator(),
	}
}

// Routes mounts all API endpoints on a fresh chi router. Middleware is
// attached by the caller, which keeps this router reusable in tests.
func (h *Handler) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/health", h.Health)

	r.Get("/products", h.ListProducts)
	r.Get("/products/{productId}", h.GetProduct)

	r.Route("/cart", func(r chi.Router) {
		r.Post("/add", h.AddToCart)
		r.Post("/remove", h.RemoveFromCart)
		r.Get("/{userId}", h.GetCart)
	})

	r.Post("/checkout", h.Checkout)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/generate-discount", h.GenerateDiscount)
		r.Get("/stats", h.Stats)
	})

	return r
}

// newValidator builds the request validator, reporting fields by their JSON
// names so error messages match what clients actually sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind decodes the JSON request body into out and validates it. On failure
// it writes a 400 response and returns false so the handler can return.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := h.validate.Struct(out); err != nil {
		h.respondError(w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// validationMessage renders the first validation failure as a human-readable
// message.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "invalid request body"
	}
	fe := ve[0]
	switch fe.Tag() {
	case "required":
		return "missing required field: " + fe.Field()
	case "gt", "min":
		return fe.Field() + " must be a positive number"
	default:
		return "invalid value for field: " + fe.Field()
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zctx.From(r.Context()).Error("encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// internalError logs the unexpected error and responds with a generic 500
// carrying the underlying message.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("internal error", zap.Error(err))
	h.respondError(w, r, http.StatusInternalServerError, err.Error())
}
