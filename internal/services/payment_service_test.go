package services_test

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
	"github.com/web-prodavnica/backend/internal/services"
)

func TestCreateCheckout(t *testing.T) {
	f := newFixture(t)
	user := f.user("kupac@example.com")
	ring := f.product("Prsten", "1500.00", 3)

	_, err := f.payments.CreateCheckout(f.ctx, user.ID, models.LocaleSerbian)
	assert.ErrorIs(t, err, services.ErrCartEmpty)

	f.addToCart(user.ID, ring.ID, 2)
	session, err := f.payments.CreateCheckout(f.ctx, user.ID, models.LocaleEnglish)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(session.OrderNumber, "MONRI-"))
	assert.Equal(t, "3000", session.Amount.String())
	assert.Equal(t, "RSD", session.Currency)
	assert.True(t, session.Simulation)

	redirect, err := url.Parse(session.RedirectURL)
	require.NoError(t, err)
	assert.Equal(t, "shop.example.com", redirect.Host)
	assert.Equal(t, "/uspjesno_placanje", redirect.Path)
	assert.Equal(t, session.OrderNumber, redirect.Query().Get("order"))
	assert.Equal(t, "3000.00", redirect.Query().Get("amount"))
	assert.Equal(t, "en", redirect.Query().Get("lang"))

	assert.Equal(t, 3, f.stock(ring.ID), "a session reserves nothing")
}

func TestCompleteCheckoutPlacesPaidOrderOnce(t *testing.T) {
	f := newFixture(t)
	user := f.user("kupac@example.com")
	ring := f.product("Prsten", "1500.00", 3)
	f.addToCart(user.ID, ring.ID, 2)

	session, err := f.payments.CreateCheckout(f.ctx, user.ID, models.LocaleSerbian)
	require.NoError(t, err)

	req := &services.CompleteCheckoutRequest{Token: session.Token, Amount: session.Amount}
	first, err := f.payments.CompleteCheckout(f.ctx, user.ID, req, models.LocaleSerbian)
	require.NoError(t, err)
	assert.False(t, first.Replayed)
	assert.Equal(t, models.OrderStatusPaid, first.Order.Status)
	require.NotNil(t, first.Order.PaymentReference)
	assert.Equal(t, session.OrderNumber, *first.Order.PaymentReference)
	assert.Equal(t, 1, f.stock(ring.ID))

	second, err := f.payments.CompleteCheckout(f.ctx, user.ID, req, models.LocaleSerbian)
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.Equal(t, 1, f.stock(ring.ID))

	n, err := f.store.Orders().CountByUser(f.ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestConcurrentCheckoutCompletion(t *testing.T) {
	f := newFixture(t)
	user := f.user("kupac@example.com")
	ring := f.product("Prsten", "100.00", 10)
	f.addToCart(user.ID, ring.ID, 1)

	session, err := f.payments.CreateCheckout(f.ctx, user.ID, models.LocaleSerbian)
	require.NoError(t, err)
	req := services.CompleteCheckoutRequest{Token: session.Token, Amount: session.Amount}

	const callers = 5
	var wg sync.WaitGroup
	ids := make(chan string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := req
			result, err := f.payments.CompleteCheckout(f.ctx, user.ID, &r, models.LocaleSerbian)
			if err == nil {
				ids <- result.Order.ID.String()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]int{}
	for id := range ids {
		seen[id]++
	}
	require.Len(t, seen, 1)
	for _, n := range seen {
		assert.Equal(t, callers, n, "every caller gets the same order")
	}
	assert.Equal(t, 9, f.stock(ring.ID))
}

func TestCompleteCheckoutRejections(t *testing.T) {
	f := newFixture(t)
	user := f.user("kupac@example.com")
	other := f.user("drugi@example.com")
	ring := f.product("Prsten", "1500.00", 3)
	f.addToCart(user.ID, ring.ID, 1)

	session, err := f.payments.CreateCheckout(f.ctx, user.ID, models.LocaleSerbian)
	require.NoError(t, err)

	_, err = f.payments.CompleteCheckout(f.ctx, user.ID, &services.CompleteCheckoutRequest{
		Token: "not-a-token", Amount: session.Amount,
	}, models.LocaleSerbian)
	assert.ErrorIs(t, err, services.ErrInvalidCheckout)

	_, err = f.payments.CompleteCheckout(f.ctx, other.ID, &services.CompleteCheckoutRequest{
		Token: session.Token, Amount: session.Amount,
	}, models.LocaleSerbian)
	assert.ErrorIs(t, err, services.ErrInvalidCheckout)

	_, err = f.payments.CompleteCheckout(f.ctx, user.ID, &services.CompleteCheckoutRequest{
		Token: session.Token, Amount: decimal.NewFromInt(1),
	}, models.LocaleSerbian)
	assert.ErrorIs(t, err, services.ErrAmountMismatch)

	// The cart changed after the session was signed.
	f.addToCart(user.ID, ring.ID, 1)
	_, err = f.payments.CompleteCheckout(f.ctx, user.ID, &services.CompleteCheckoutRequest{
		Token: session.Token, Amount: session.Amount,
	}, models.LocaleSerbian)
	assert.ErrorIs(t, err, services.ErrAmountMismatch)

	assert.Equal(t, 3, f.stock(ring.ID))
}

// interleavingPlacer runs before ahead of the placement, as a request that
// lands between the cart read and the transaction would.
type interleavingPlacer struct {
	inner  services.OrderPlacer
	before func()
}

func (p *interleavingPlacer) PlaceOrder(ctx context.Context, req orders.PlaceOrderRequest) (*orders.PlaceOrderResult, error) {
	if p.before != nil {
		p.before()
		p.before = nil
	}
	return p.inner.PlaceOrder(ctx, req)
}

func (f *fixture) interleavedPayments(before func()) *services.PaymentService {
	placer := &interleavingPlacer{inner: f.placer, before: before}
	orderService := services.NewOrderService(placer, f.store.Orders(), f.store.Users(), f.metrics)
	return services.NewPaymentService(f.cfg, f.carts, orderService)
}

func TestCompleteCheckoutOrdersOnlyTheLinesThatWerePaid(t *testing.T) {
	f := newFixture(t)
	user := f.user("kupac@example.com")
	ring := f.product("Prsten", "1500.00", 3)
	chain := f.product("Lanac", "4000.00", 3)
	f.addToCart(user.ID, ring.ID, 1)

	session, err := f.payments.CreateCheckout(f.ctx, user.ID, models.LocaleSerbian)
	require.NoError(t, err)

	payments := f.interleavedPayments(func() { f.addToCart(user.ID, chain.ID, 1) })
	result, err := payments.CompleteCheckout(f.ctx, user.ID, &services.CompleteCheckoutRequest{
		Token: session.Token, Amount: session.Amount,
	}, models.LocaleSerbian)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPaid, result.Order.Status)
	assert.True(t, session.Amount.Equal(result.Order.Total), "paid order total must equal the signed amount")
	require.Len(t, result.Order.Items, 1)
	assert.Equal(t, ring.ID, result.Order.Items[0].ProductID)
	assert.Equal(t, 2, f.stock(ring.ID))
	assert.Equal(t, 3, f.stock(chain.ID))

	cart, err := f.carts.GetCart(f.ctx, user.ID, models.LocaleSerbian)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "the line added during checkout stays in the cart")
	assert.Equal(t, chain.ID.String(), cart.Items[0].Product.ID)
}

func TestCompleteCheckoutRejectsPriceChangedDuringPlacement(t *testing.T) {
	f := newFixture(t)
	user := f.user("kupac@example.com")
	ring := f.product("Prsten", "1500.00", 3)
	f.addToCart(user.ID, ring.ID, 1)

	session, err := f.payments.CreateCheckout(f.ctx, user.ID, models.LocaleSerbian)
	require.NoError(t, err)

	payments := f.interleavedPayments(func() {
		p, err := f.store.Products().Get(f.ctx, ring.ID)
		require.NoError(t, err)
		p.Price = decimal.RequireFromString("1800.00")
		require.NoError(t, f.store.Products().Update(f.ctx, p))
	})
	_, err = payments.CompleteCheckout(f.ctx, user.ID, &services.CompleteCheckoutRequest{
		Token: session.Token, Amount: session.Amount,
	}, models.LocaleSerbian)
	assert.ErrorIs(t, err, services.ErrAmountMismatch)

	n, err := f.store.Orders().CountByUser(f.ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 3, f.stock(ring.ID))

	_, count, err := f.carts.Total(f.ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "a rejected checkout keeps the cart")
}
