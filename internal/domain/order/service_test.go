package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoply/shoply-api/internal/domain/cart"
	"github.com/shoply/shoply-api/internal/domain/discount"
	"github.com/shoply/shoply-api/internal/domain/product"
)

// --- Mock implementations ---

type mockProductRepo struct {
	byID map[string]*product.Product
}

func (m *mockProductRepo) List(_ context.Context) ([]product.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, &product.NotFoundError{ProductID: id}
	}
	return p, nil
}

type mockCartRepo struct {
	carts map[string][]cart.Line
}

func (m *mockCartRepo) Lines(_ context.Context, userID string) ([]cart.Line, error) {
	return append([]cart.Line(nil), m.carts[userID]...), nil
}

func (m *mockCartRepo) Save(_ context.Context, userID string, lines []cart.Line) error {
	m.carts[userID] = append([]cart.Line(nil), lines...)
	return nil
}

func (m *mockCartRepo) Clear(_ context.Context, userID string) error {
	delete(m.carts, userID)
	return nil
}

type mockDiscountRepo struct {
	codes []discount.Code
}

func (m *mockDiscountRepo) InsertIfAbsent(_ context.Context, code *discount.Code) (bool, error) {
	for i := range m.codes {
		if m.codes[i].Milestone == code.Milestone {
			return false, nil
		}
	}
	m.codes = append(m.codes, *code)
	return true, nil
}

func (m *mockDiscountRepo) Consume(_ context.Context, code string, usedAt time.Time) (*discount.Code, error) {
	for i := range m.codes {
		if m.codes[i].Code != code {
			continue
		}
		if m.codes[i].Status == discount.StatusUsed {
			return nil, discount.ErrAlreadyUsed
		}
		m.codes[i].Status = discount.StatusUsed
		m.codes[i].UsedAt = &usedAt
		c := m.codes[i]
		return &c, nil
	}
	return nil, discount.ErrInvalidCode
}

func (m *mockDiscountRepo) List(_ context.Context) ([]discount.Code, error) {
	return append([]discount.Code(nil), m.codes...), nil
}

type mockOrderRepo struct {
	orders  []Order
	counter int
}

func (m *mockOrderRepo) Append(_ context.Context, o *Order) error {
	m.orders = append(m.orders, *o)
	m.counter++
	return nil
}

func (m *mockOrderRepo) List(_ context.Context) ([]Order, error) {
	return append([]Order(nil), m.orders...), nil
}

func (m *mockOrderRepo) Count(_ context.Context) (int, error) {
	return m.counter, nil
}

// --- Helpers ---

type fixture struct {
	carts     *cart.Service
	ledger    *discount.Ledger
	orders    *mockOrderRepo
	discounts *mockDiscountRepo
	svc       *Service
}

func newFixture() *fixture {
	products := map[string]*product.Product{
		"p1": {ID: "p1", Name: "Wireless Mouse", Price: 2999},
		"p3": {ID: "p3", Name: "USB-C Hub", Price: 4999},
	}
	discounts := &mockDiscountRepo{}
	orders := &mockOrderRepo{}
	carts := cart.NewService(
		&mockProductRepo{byID: products},
		&mockCartRepo{carts: make(map[string][]cart.Line)},
	)
	ledger := discount.NewLedger(discounts, 5, 10)
	return &fixture{
		carts:     carts,
		ledger:    ledger,
		orders:    orders,
		discounts: discounts,
		svc:       NewService(carts, ledger, orders),
	}
}

func (f *fixture) seedCart(t *testing.T, userID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.carts.Add(ctx, userID, "p1", 2)
	require.NoError(t, err)
	_, err = f.carts.Add(ctx, userID, "p3", 1)
	require.NoError(t, err)
}

// --- Tests ---

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Checkout(context.Background(), "u1", "")
	require.ErrorIs(t, err, ErrEmptyCart)

	count, err := f.orders.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "counter must not move on failed checkout")
	assert.Empty(t, f.discounts.codes)
}

func TestCheckout_NoCode(t *testing.T) {
	f := newFixture()
	f.seedCart(t, "u1")

	result, err := f.svc.Checkout(context.Background(), "u1", "")
	require.NoError(t, err)

	o := result.Order
	assert.Equal(t, int64(10997), o.Subtotal)
	assert.Zero(t, o.DiscountAmount)
	assert.Equal(t, int64(10997), o.Total)
	assert.Empty(t, o.DiscountCode)
	assert.Equal(t, "u1", o.UserID)
	assert.Len(t, o.Items, 2)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "Order placed successfully!", result.Message)

	// Cart is cleared after a successful checkout.
	c, err := f.carts.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	count, err := f.orders.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCheckout_WithCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Reach the first milestone, then mint a code.
	for i := range 5 {
		f.seedCart(t, "u1")
		_, err := f.svc.Checkout(ctx, "u1", "")
		require.NoError(t, err, "checkout %d", i+1)
	}
	code, err := f.ledger.Generate(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, code)

	f.seedCart(t, "u2")
	result, err := f.svc.Checkout(ctx, "u2", code.Code)
	require.NoError(t, err)

	o := result.Order
	assert.Equal(t, int64(10997), o.Subtotal)
	assert.Equal(t, int64(1100), o.DiscountAmount, "round(1099.7)")
	assert.Equal(t, int64(9897), o.Total)
	assert.Equal(t, code.Code, o.DiscountCode)
	assert.Contains(t, result.Message, "You saved 1100")
	assert.Contains(t, result.Message, code.Code)
}

func TestCheckout_CodeReuseFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for range 5 {
		f.seedCart(t, "u1")
		_, err := f.svc.Checkout(ctx, "u1", "")
		require.NoError(t, err)
	}
	code, err := f.ledger.Generate(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, code)

	f.seedCart(t, "u2")
	_, err = f.svc.Checkout(ctx, "u2", code.Code)
	require.NoError(t, err)

	f.seedCart(t, "u3")
	_, err = f.svc.Checkout(ctx, "u3", code.Code)
	require.ErrorIs(t, err, discount.ErrAlreadyUsed)

	// Only the successful attempts made it into the log.
	orders, err := f.orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 6)

	// The failed checkout left u3's cart intact.
	c, err := f.carts.Get(ctx, "u3")
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
}

func TestCheckout_InvalidCodeHasNoSideEffects(t *testing.T) {
	f := newFixture()
	f.seedCart(t, "u1")
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, "u1", "NOPE1234")
	require.ErrorIs(t, err, discount.ErrInvalidCode)

	count, err := f.orders.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	c, err := f.carts.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, c.Items, 2, "cart untouched on failed checkout")
}

func TestCheckout_OwnIncrementReachesNextMilestone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Four orders: not yet on a milestone.
	for range 4 {
		f.seedCart(t, "u1")
		_, err := f.svc.Checkout(ctx, "u1", "")
		require.NoError(t, err)
	}
	code, err := f.ledger.Generate(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, code)

	// The fifth order's own increment makes the milestone reachable, but a
	// code minted afterwards never applies to that order retroactively.
	f.seedCart(t, "u1")
	result, err := f.svc.Checkout(ctx, "u1", "")
	require.NoError(t, err)
	assert.Zero(t, result.Order.DiscountAmount)

	count, err := f.orders.Count(ctx)
	require.NoError(t, err)
	code, err = f.ledger.Generate(ctx, count)
	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Equal(t, discount.StatusUnused, code.Status)
}

func TestCheckout_ItemsAreSnapshot(t *testing.T) {
	f := newFixture()
	f.seedCart(t, "u1")
	ctx := context.Background()

	result, err := f.svc.Checkout(ctx, "u1", "")
	require.NoError(t, err)

	// New cart activity after checkout must not leak into the order.
	_, err = f.carts.Add(ctx, "u1", "p1", 7)
	require.NoError(t, err)

	orders, err := f.orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, result.Order.Items, orders[0].Items)
	assert.Len(t, orders[0].Items, 2)
}
