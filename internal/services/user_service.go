// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/repository"
	"github.com/web-prodavnica/backend/internal/utils"
)

type UserService struct {
	users  repository.UserRepository
	orders repository.OrderRepository
}

type UpdateUserProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

type DeliveryDetailsRequest struct {
	Address    string `json:"address" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
	Phone      string `json:"phone" validate:"required,phone"`
}

func NewUserService(users repository.UserRepository, orders repository.OrderRepository) *UserService {
	return &UserService{
		users:  users,
		orders: orders,
	}
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateUserProfileRequest) (*models.User, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	setString(&user.FirstName, req.FirstName)
	setString(&user.LastName, req.LastName)
	setString(&user.Phone, req.Phone)
	setString(&user.AvatarURL, req.AvatarURL)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// DeleteAccount removes the account after a password check. Accounts with
// order history are kept.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID, req *DeleteAccountRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	// Verify password
	if err := user.CheckPassword(req.Password); err != nil {
		return ErrWrongPassword
	}

	return deleteUser(ctx, s.users, s.orders, userID)
}

func (s *UserService) GetDelivery(ctx context.Context, userID uuid.UUID) (*models.DeliveryDetails, error) {
	details, err := s.users.GetDelivery(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrDeliveryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return details, nil
}

func (s *UserService) SaveDelivery(ctx context.Context, userID uuid.UUID, req *DeliveryDetailsRequest) (*models.DeliveryDetails, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	details := &models.DeliveryDetails{
		UserID:     userID,
		Address:    strings.TrimSpace(req.Address),
		City:       strings.TrimSpace(req.City),
		PostalCode: strings.TrimSpace(req.PostalCode),
		Country:    strings.TrimSpace(req.Country),
		Phone:      strings.TrimSpace(req.Phone),
	}
	if err := s.users.UpsertDelivery(ctx, details); err != nil {
		return nil, fmt.Errorf("failed to save delivery details: %w", err)
	}
	return details, nil
}

func (s *UserService) DeleteDelivery(ctx context.Context, userID uuid.UUID) error {
	err := s.users.DeleteDelivery(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDeliveryNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete delivery details: %w", err)
	}
	return nil
}

func deleteUser(ctx context.Context, users repository.UserRepository, orders repository.OrderRepository, userID uuid.UUID) error {
	count, err := orders.CountByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return ErrUserHasOrders
	}

	err = users.Delete(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrInUse):
		return ErrUserHasOrders
	case err != nil:
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
