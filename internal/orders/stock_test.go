package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/web-prodavnica/backend/internal/models"
)

type fakeTx struct {
	onHand    map[uuid.UUID]int
	updateErr error
	readErr   error
}

func (f *fakeTx) GetProduct(ctx context.Context, id uuid.UUID, lang string) (ProductSnapshot, error) {
	if f.readErr != nil {
		return ProductSnapshot{}, f.readErr
	}
	n, ok := f.onHand[id]
	if !ok {
		return ProductSnapshot{}, ErrNotFound
	}
	return ProductSnapshot{ID: id, OnHand: n}, nil
}

func (f *fakeTx) DecrementStock(ctx context.Context, id uuid.UUID, amount int) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	n, ok := f.onHand[id]
	if !ok || n < amount {
		return 0, nil
	}
	f.onHand[id] = n - amount
	return 1, nil
}

func (f *fakeTx) InsertOrder(ctx context.Context, order *models.Order) error       { return nil }
func (f *fakeTx) InsertOrderLine(ctx context.Context, line *models.OrderItem) error { return nil }

func TestDecrementStock(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("decrements when enough stock", func(t *testing.T) {
		tx := &fakeTx{onHand: map[uuid.UUID]int{id: 5}}
		require.NoError(t, DecrementStock(ctx, tx, id, 5))
		assert.Equal(t, 0, tx.onHand[id])
	})

	t.Run("reports insufficient stock with current quantity", func(t *testing.T) {
		tx := &fakeTx{onHand: map[uuid.UUID]int{id: 2}}
		err := DecrementStock(ctx, tx, id, 3)

		oe, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, KindInsufficientStock, oe.Kind)
		assert.Equal(t, 3, oe.Requested)
		assert.Equal(t, 2, oe.Available)
		assert.Equal(t, 2, tx.onHand[id])
	})

	t.Run("missing product", func(t *testing.T) {
		err := DecrementStock(ctx, &fakeTx{onHand: map[uuid.UUID]int{}}, id, 1)
		assert.True(t, IsKind(err, KindProductNotFound))
	})

	t.Run("non-positive amount", func(t *testing.T) {
		err := DecrementStock(ctx, &fakeTx{onHand: map[uuid.UUID]int{id: 1}}, id, 0)
		assert.True(t, IsKind(err, KindInvalidRequest))
	})

	t.Run("store failure", func(t *testing.T) {
		cause := errors.New("deadlock detected")
		err := DecrementStock(ctx, &fakeTx{updateErr: cause}, id, 1)
		assert.True(t, IsKind(err, KindPersistenceFailure))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("re-read failure", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := DecrementStock(ctx, &fakeTx{onHand: map[uuid.UUID]int{}, readErr: cause}, id, 1)
		assert.True(t, IsKind(err, KindPersistenceFailure))
	})
}

func TestClassify(t *testing.T) {
	plain := errors.New("tx aborted")
	assert.Equal(t, KindPersistenceFailure, classify(plain).Kind)

	typed := insufficientStock(uuid.New(), 2, 1)
	assert.Same(t, typed, classify(typed))
}
