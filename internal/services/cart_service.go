// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
	"github.com/web-prodavnica/backend/internal/repository"
	"github.com/web-prodavnica/backend/internal/utils"
)

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1,max=1000"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=1000"`
}

type CartLineView struct {
	ID        uuid.UUID               `json:"id"`
	Product   models.LocalizedProduct `json:"product"`
	Quantity  int                     `json:"quantity"`
	LineTotal decimal.Decimal         `json:"line_total"`
	// InStock is false when the current stock cannot cover the line.
	InStock bool `json:"in_stock"`
}

// CartView prices the cart at current catalog prices. Nothing is reserved.
type CartView struct {
	Items []CartLineView  `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID, lang string) (*CartView, error) {
	items, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return buildCartView(items, lang), nil
}

// Total returns the current value of the user's cart.
func (s *CartService) Total(ctx context.Context, userID uuid.UUID) (decimal.Decimal, int, error) {
	items, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to load cart: %w", err)
	}
	view := buildCartView(items, models.LocaleSerbian)
	return view.Total, view.Count, nil
}

// Lines returns the cart as order lines, oldest first.
func (s *CartService) Lines(ctx context.Context, userID uuid.UUID) ([]orders.LineRequest, error) {
	lines, err := s.carts.CartLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return lines, nil
}

// AddItem puts a product in the cart or raises the quantity of its line.
// Only the product's existence is checked; stock is verified when ordering.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *AddToCartRequest) (*models.CartItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if _, err := s.products.Get(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	item, err := s.carts.AddOrIncrement(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	return item, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req *UpdateCartItemRequest) (*models.CartItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return nil, err
	}

	item, err := s.carts.UpdateQuantity(ctx, itemID, req.Quantity)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.carts.Delete(ctx, itemID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ownedItem hides other users' lines behind ErrCartItemNotFound.
func (s *CartService) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	item, err := s.carts.Get(ctx, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if item.UserID != userID {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}

func buildCartView(items []models.CartItem, lang string) *CartView {
	view := &CartView{Items: make([]CartLineView, 0, len(items)), Total: decimal.Zero}
	for i := range items {
		item := &items[i]
		line := item.LineTotal()
		view.Items = append(view.Items, CartLineView{
			ID:        item.ID,
			Product:   item.Product.Localize(lang),
			Quantity:  item.Quantity,
			LineTotal: line,
			InStock:   item.Product.InStock(item.Quantity),
		})
		view.Total = view.Total.Add(line)
		view.Count += item.Quantity
	}
	return view
}
