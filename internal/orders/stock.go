package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// DecrementStock removes amount units of a product inside tx. Zero affected
// rows means a concurrent order took the stock after validation; the caller
// must abort the transaction with the returned InsufficientStock error.
func DecrementStock(ctx context.Context, tx Tx, productID uuid.UUID, amount int) error {
	if amount <= 0 {
		return invalidRequest("decrement for product %s must be positive", productID)
	}

	affected, err := tx.DecrementStock(ctx, productID, amount)
	if err != nil {
		return persistenceFailure(err)
	}
	if affected > 0 {
		return nil
	}

	available := 0
	current, err := tx.GetProduct(ctx, productID, "")
	switch {
	case errors.Is(err, ErrNotFound):
		return productNotFound(productID)
	case err != nil:
		return persistenceFailure(err)
	default:
		available = current.OnHand
	}
	return insufficientStock(productID, amount, available)
}
