// internal/services/favorite_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/repository"
)

type FavoriteService struct {
	favorites repository.FavoriteRepository
	products  repository.ProductRepository
}

func NewFavoriteService(favorites repository.FavoriteRepository, products repository.ProductRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, products: products}
}

func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID, lang string) ([]models.LocalizedProduct, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	list := make([]models.LocalizedProduct, 0, len(favorites))
	for i := range favorites {
		list = append(list, favorites[i].Product.Localize(lang))
	}
	return list, nil
}

func (s *FavoriteService) Add(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.products.Get(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	err := s.favorites.Create(ctx, &models.Favorite{UserID: userID, ProductID: productID})
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrAlreadyFavorite
	}
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	err := s.favorites.Delete(ctx, userID, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFavoriteNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	ok, err := s.favorites.Exists(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return ok, nil
}
