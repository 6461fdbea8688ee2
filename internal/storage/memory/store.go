// Package memory implements every domain repository on top of a single
// in-process store. The store is constructed explicitly at startup and
// injected into the services; Reset exists for test isolation only.
package memory

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/go-faster/errors"

	"github.com/shoply/shoply-api/internal/domain/cart"
	"github.com/shoply/shoply-api/internal/domain/discount"
	"github.com/shoply/shoply-api/internal/domain/order"
	"github.com/shoply/shoply-api/internal/domain/product"
)

//go:embed products.json
var seedCatalog []byte

// Store holds all mutable process state: the product catalog, per-user
// carts, the append-only order log, the discount ledger, and the global
// order counter.
//
// A single mutex guards everything. The two critical sections the domain
// depends on, redeeming a discount code and appending an order while
// incrementing the counter, each run entirely under the lock, so the
// at-most-once-use and exact-milestone-count invariants hold even with
// concurrent request goroutines. Contention is irrelevant at this scale.
type Store struct {
	mu       sync.RWMutex
	products []product.Product
	carts    map[string][]cart.Line
	orders   []order.Order
	codes    []discount.Code
	counter  int
}

// NewStore creates a Store seeded with the embedded product catalog.
func NewStore() (*Store, error) {
	var products []product.Product
	if err := json.Unmarshal(seedCatalog, &products); err != nil {
		return nil, errors.Wrap(err, "parse seed catalog")
	}
	return NewStoreWithProducts(products), nil
}

// NewStoreWithProducts creates a Store with an explicit catalog. Used by
// tests that need a known set of products.
func NewStoreWithProducts(products []product.Product) *Store {
	return &Store{
		products: products,
		carts:    make(map[string][]cart.Line),
	}
}

// Reset drops all carts, orders, and discount codes and zeroes the order
// counter, keeping the catalog. Test isolation entry point; never called on
// a serving store.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts = make(map[string][]cart.Line)
	s.orders = nil
	s.codes = nil
	s.counter = 0
}
