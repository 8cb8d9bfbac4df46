// internal/services/admin_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/repository"
	"github.com/web-prodavnica/backend/internal/utils"
)

type AdminService struct {
	users  repository.UserRepository
	orders repository.OrderRepository
}

type AdminUserFilter struct {
	utils.PaginationParams
	Role models.UserRole `json:"role,omitempty"`
}

type AdminCreateUserRequest struct {
	Email     string          `json:"email" validate:"required,email,max=255"`
	Password  string          `json:"password" validate:"required,password"`
	FirstName string          `json:"first_name,omitempty" validate:"max=100"`
	LastName  string          `json:"last_name" validate:"required,max=100"`
	Phone     string          `json:"phone,omitempty" validate:"omitempty,phone"`
	Role      models.UserRole `json:"role,omitempty" validate:"omitempty,oneof=customer admin"`
}

func NewAdminService(users repository.UserRepository, orders repository.OrderRepository) *AdminService {
	return &AdminService{
		users:  users,
		orders: orders,
	}
}

// User Management
func (s *AdminService) GetUsers(ctx context.Context, filter AdminUserFilter) ([]models.User, int64, error) {
	users, total, err := s.users.List(ctx, repository.UserFilter{
		PaginationParams: filter.PaginationParams,
		Role:             filter.Role,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, total, nil
}

func (s *AdminService) CreateUser(ctx context.Context, req *AdminCreateUserRequest, adminID uuid.UUID) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleCustomer
	}

	user := &models.User{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Role:      role,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     strings.TrimSpace(req.Phone),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"admin_id": adminID,
		"user_id":  user.ID,
		"role":     user.Role,
	}).Info("User created by administrator")

	return user, nil
}

// DeleteUser removes another user's account. Users with orders are kept.
func (s *AdminService) DeleteUser(ctx context.Context, userID, adminID uuid.UUID) error {
	if userID == adminID {
		return ErrCannotDeleteSelf
	}

	if err := deleteUser(ctx, s.users, s.orders, userID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"admin_id": adminID,
		"user_id":  userID,
	}).Info("User deleted by administrator")

	return nil
}
