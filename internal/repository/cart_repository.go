package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *cartRepository) Get(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *cartRepository) AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
			"updated_at": gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(item).Error
	if err != nil {
		return nil, translate(err)
	}

	var stored models.CartItem
	err = r.db.WithContext(ctx).Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&stored).Error
	if err != nil {
		return nil, translate(err)
	}
	return &stored, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*models.CartItem, error) {
	result := r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *cartRepository) CartLines(ctx context.Context, userID uuid.UUID) ([]orders.LineRequest, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	lines := make([]orders.LineRequest, 0, len(items))
	for _, item := range items {
		lines = append(lines, orders.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, userID uuid.UUID, productIDs ...uuid.UUID) error {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(productIDs) > 0 {
		query = query.Where("product_id IN ?", productIDs)
	}
	return query.Delete(&models.CartItem{}).Error
}
