package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/repository"
)

type favorites struct {
	s *Store
}

func (r *favorites) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []models.Favorite
	for _, fav := range r.s.data.favorites {
		if fav.UserID != userID {
			continue
		}
		if p, ok := r.s.data.products[fav.ProductID]; ok {
			fav.Product = cloneProduct(p)
		}
		list = append(list, fav)
	}
	sortByCreated(list, func(f models.Favorite) time.Time { return f.CreatedAt }, true)
	return list, nil
}

func (r *favorites) find(userID, productID uuid.UUID) (uuid.UUID, bool) {
	for id, fav := range r.s.data.favorites {
		if fav.UserID == userID && fav.ProductID == productID {
			return id, true
		}
	}
	return uuid.Nil, false
}

func (r *favorites) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.find(userID, productID)
	return ok, nil
}

func (r *favorites) Create(ctx context.Context, favorite *models.Favorite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.find(favorite.UserID, favorite.ProductID); ok {
		return repository.ErrDuplicate
	}
	if _, ok := r.s.data.products[favorite.ProductID]; !ok {
		return repository.ErrNotFound
	}
	r.s.stamp(&favorite.BaseModel)
	stored := *favorite
	stored.Product = models.Product{}
	stored.User = models.User{}
	r.s.data.favorites[stored.ID] = stored
	return nil
}

func (r *favorites) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.find(userID, productID)
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.s.data.favorites, id)
	return nil
}
