// Package repository holds the persistence contracts used by the services
// and their gorm implementations. The memory subpackage provides an
// in-process implementation of the same contracts.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
	"github.com/web-prodavnica/backend/internal/utils"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	ErrInUse     = errors.New("record is still referenced")
)

type ProductFilter struct {
	utils.PaginationParams
	InStock  bool
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
}

type OrderFilter struct {
	utils.PaginationParams
	UserID *uuid.UUID
	Status models.OrderStatus
}

type UserFilter struct {
	utils.PaginationParams
	Role models.UserRole
}

// ProductSortFields are the columns a product listing may be ordered by.
var ProductSortFields = []string{"created_at", "price", "name_sr", "name_en", "quantity"}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	// Delete returns ErrInUse while order lines reference the product.
	Delete(ctx context.Context, id uuid.UUID) error
	// SetStock overwrites the on-hand quantity.
	SetStock(ctx context.Context, id uuid.UUID, quantity int) (*models.Product, error)
}

type CartRepository interface {
	orders.CartStore
	// ListByUser returns the user's lines with Product loaded, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Get(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	// AddOrIncrement inserts the line or adds quantity to the existing one.
	AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*models.CartItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	// Create returns ErrDuplicate when the product is already a favorite.
	Create(ctx context.Context, favorite *models.Favorite) error
	Delete(ctx context.Context, userID, productID uuid.UUID) error
}

// OrderRepository covers everything about orders except their creation,
// which only happens through orders.Placer.
type OrderRepository interface {
	List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	// Get loads the order with its lines.
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByPaymentReference(ctx context.Context, reference string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type UserRepository interface {
	// Create returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user with their cart, favorites and delivery details.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
	GetDelivery(ctx context.Context, userID uuid.UUID) (*models.DeliveryDetails, error)
	UpsertDelivery(ctx context.Context, details *models.DeliveryDetails) error
	DeleteDelivery(ctx context.Context, userID uuid.UUID) error
}
