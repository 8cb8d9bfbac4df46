// Package orders places orders: it validates line requests, writes the order
// header and its price/image snapshot lines, and decrements stock in a
// single store transaction, then runs best-effort post-commit hooks.
package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/web-prodavnica/backend/internal/models"
)

// PlaceOrderResult is returned for a committed order.
type PlaceOrderResult struct {
	Order    *models.Order   `json:"order"`
	Total    decimal.Decimal `json:"total"`
	Warnings []Warning       `json:"warnings,omitempty"`
}

type Placer struct {
	store         Store
	carts         CartStore
	hooks         []Hook
	defaultStatus models.OrderStatus
	hookTimeout   time.Duration
	now           func() time.Time
}

type Option func(*Placer)

// WithCarts lets cart-sourced requests without explicit lines read the cart.
func WithCarts(carts CartStore) Option {
	return func(p *Placer) { p.carts = carts }
}

func WithHooks(hooks ...Hook) Option {
	return func(p *Placer) { p.hooks = append(p.hooks, hooks...) }
}

func WithDefaultStatus(status models.OrderStatus) Option {
	return func(p *Placer) { p.defaultStatus = status }
}

// WithHookTimeout bounds each post-commit hook.
func WithHookTimeout(d time.Duration) Option {
	return func(p *Placer) { p.hookTimeout = d }
}

func NewPlacer(store Store, opts ...Option) *Placer {
	p := &Placer{
		store:         store,
		defaultStatus: models.OrderStatusPending,
		hookTimeout:   10 * time.Second,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PlaceOrder creates the order atomically. Any returned error is an *Error.
func (p *Placer) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if req.Source == SourceCart && len(req.Lines) == 0 && p.carts != nil && req.UserID != uuid.Nil {
		lines, err := p.carts.CartLines(ctx, req.UserID)
		if err != nil {
			return nil, persistenceFailure(err)
		}
		req.Lines = lines
	}

	req, err := normalize(req, p.defaultStatus)
	if err != nil {
		return nil, err
	}

	var (
		order    models.Order
		products []ProductSnapshot
	)
	err = p.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		products, err = resolveProducts(ctx, tx, req)
		if err != nil {
			return err
		}

		total := ComputeTotal(products, req.Lines)
		if req.ExpectedTotal != nil && !total.Equal(*req.ExpectedTotal) {
			return totalMismatch(*req.ExpectedTotal, total)
		}

		order = NewOrderHeader(req, total)
		now := p.now()
		order.CreatedAt, order.UpdatedAt = now, now
		if err := tx.InsertOrder(ctx, &order); err != nil {
			return persistenceFailure(err)
		}

		order.Items = make([]models.OrderItem, 0, len(req.Lines))
		for i, line := range req.Lines {
			item := NewOrderLine(order.ID, products[i], line)
			if err := tx.InsertOrderLine(ctx, &item); err != nil {
				return persistenceFailure(err)
			}
			if err := DecrementStock(ctx, tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
			order.Items = append(order.Items, item)
		}
		return nil
	})
	if err != nil {
		oe := classify(err)
		logrus.WithFields(logrus.Fields{
			"user_id": req.UserID,
			"source":  req.Source,
			"kind":    oe.Kind,
		}).WithError(err).Warn("Order placement rejected")
		return nil, oe
	}

	placed := &Placed{Request: req, Order: &order, Products: products}
	warnings := runHooks(context.WithoutCancel(ctx), p.hooks, p.hookTimeout, placed)
	for _, w := range warnings {
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,
			"hook":     w.Hook,
		}).Warn("Post-commit hook failed: " + w.Message)
	}

	return &PlaceOrderResult{Order: &order, Total: order.Total, Warnings: warnings}, nil
}

// resolveProducts reads every product inside tx and checks stock before
// anything is written.
func resolveProducts(ctx context.Context, tx Tx, req PlaceOrderRequest) ([]ProductSnapshot, error) {
	products := make([]ProductSnapshot, len(req.Lines))
	for i, line := range req.Lines {
		product, err := tx.GetProduct(ctx, line.ProductID, req.Locale)
		if errors.Is(err, ErrNotFound) {
			return nil, productNotFound(line.ProductID)
		}
		if err != nil {
			return nil, persistenceFailure(err)
		}
		if product.OnHand < line.Quantity {
			return nil, insufficientStock(line.ProductID, line.Quantity, product.OnHand)
		}
		products[i] = product
	}
	return products, nil
}
