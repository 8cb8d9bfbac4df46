package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
)

// OrderStore runs order placements inside a database transaction.
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) WithinTx(ctx context.Context, fn func(tx orders.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderTx{db: tx})
	})
}

type orderTx struct {
	db *gorm.DB
}

func (t *orderTx) GetProduct(ctx context.Context, id uuid.UUID, lang string) (orders.ProductSnapshot, error) {
	var product models.Product
	if err := t.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return orders.ProductSnapshot{}, orders.ErrNotFound
		}
		return orders.ProductSnapshot{}, err
	}
	return orders.SnapshotOf(&product, lang), nil
}

func (t *orderTx) DecrementStock(ctx context.Context, id uuid.UUID, amount int) (int64, error) {
	result := t.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", amount),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, translate(result.Error)
}

func (t *orderTx) InsertOrder(ctx context.Context, order *models.Order) error {
	return translate(t.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error)
}

func (t *orderTx) InsertOrderLine(ctx context.Context, line *models.OrderItem) error {
	return translate(t.db.WithContext(ctx).Omit(clause.Associations).Create(line).Error)
}
