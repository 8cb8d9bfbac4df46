package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
	"github.com/web-prodavnica/backend/internal/repository"
)

type carts struct {
	s *Store
}

// withProduct attaches the current product row. Callers hold mu.
func (r *carts) withProduct(item models.CartItem) models.CartItem {
	if p, ok := r.s.data.products[item.ProductID]; ok {
		item.Product = cloneProduct(p)
	}
	return item
}

func (r *carts) userItems(userID uuid.UUID) []models.CartItem {
	var list []models.CartItem
	for _, item := range r.s.data.carts {
		if item.UserID == userID {
			list = append(list, item)
		}
	}
	sortByCreated(list, func(i models.CartItem) time.Time { return i.CreatedAt }, false)
	return list
}

func (r *carts) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := r.userItems(userID)
	for i := range list {
		list[i] = r.withProduct(list[i])
	}
	return list, nil
}

func (r *carts) Get(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.data.carts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	item = r.withProduct(item)
	return &item, nil
}

func (r *carts) AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if quantity <= 0 {
		return nil, errCheckViolation
	}
	if _, ok := r.s.data.products[productID]; !ok {
		return nil, repository.ErrNotFound
	}

	for id, item := range r.s.data.carts {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity += quantity
			item.UpdatedAt = r.s.now()
			r.s.data.carts[id] = item
			item = r.withProduct(item)
			return &item, nil
		}
	}

	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	r.s.stamp(&item.BaseModel)
	r.s.data.carts[item.ID] = item
	item = r.withProduct(item)
	return &item, nil
}

func (r *carts) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*models.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.data.carts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if quantity <= 0 {
		return nil, errCheckViolation
	}
	item.Quantity = quantity
	item.UpdatedAt = r.s.now()
	r.s.data.carts[id] = item
	item = r.withProduct(item)
	return &item, nil
}

func (r *carts) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.carts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.data.carts, id)
	return nil
}

func (r *carts) CartLines(ctx context.Context, userID uuid.UUID) ([]orders.LineRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items := r.userItems(userID)
	lines := make([]orders.LineRequest, 0, len(items))
	for _, item := range items {
		lines = append(lines, orders.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines, nil
}

func (r *carts) ClearCart(ctx context.Context, userID uuid.UUID, productIDs ...uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	only := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		only[id] = true
	}
	for id, item := range r.s.data.carts {
		if item.UserID != userID {
			continue
		}
		if len(only) > 0 && !only[item.ProductID] {
			continue
		}
		delete(r.s.data.carts, id)
	}
	return nil
}
