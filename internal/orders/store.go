package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/web-prodavnica/backend/internal/models"
)

// ProductSnapshot is what the transaction needs to know about a product.
type ProductSnapshot struct {
	ID           uuid.UUID
	Name         string
	Price        decimal.Decimal
	PrimaryImage string
	OnHand       int
}

// SnapshotOf copies the order-relevant fields of p.
func SnapshotOf(p *models.Product, lang string) ProductSnapshot {
	return ProductSnapshot{
		ID:           p.ID,
		Name:         p.Name(lang),
		Price:        p.Price,
		PrimaryImage: p.PrimaryImage(),
		OnHand:       p.Quantity,
	}
}

// Tx is the set of mutations the placement runs inside one store transaction.
type Tx interface {
	// GetProduct returns ErrNotFound when the product does not exist.
	GetProduct(ctx context.Context, id uuid.UUID, lang string) (ProductSnapshot, error)
	// DecrementStock subtracts amount only where quantity >= amount and
	// returns the number of rows changed (0 or 1).
	DecrementStock(ctx context.Context, id uuid.UUID, amount int) (int64, error)
	InsertOrder(ctx context.Context, order *models.Order) error
	InsertOrderLine(ctx context.Context, line *models.OrderItem) error
}

// Store runs fn atomically: every Tx call made by fn is committed together or
// not at all. A non-nil error from fn rolls the transaction back.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// CartStore is the cart collaborator used by cart-sourced orders.
type CartStore interface {
	CartLines(ctx context.Context, userID uuid.UUID) ([]LineRequest, error)
	// ClearCart removes the user's lines for productIDs, or every line when
	// none are given.
	ClearCart(ctx context.Context, userID uuid.UUID, productIDs ...uuid.UUID) error
}

// Notifier delivers the confirmation for a placed order.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, summary Summary) error
}
