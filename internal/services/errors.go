package services

import (
	"errors"
	"fmt"

	"github.com/web-prodavnica/backend/internal/models"
)

var (
	ErrProductNotFound         = errors.New("product not found")
	ErrProductInUse            = errors.New("product is referenced by orders")
	ErrInvalidPrice            = errors.New("price must be greater than zero")
	ErrCartItemNotFound        = errors.New("cart item not found")
	ErrCartEmpty               = errors.New("cart is empty")
	ErrAlreadyFavorite         = errors.New("product is already a favorite")
	ErrFavoriteNotFound        = errors.New("product is not a favorite")
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrUnknownStatus           = errors.New("unknown order status")
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailTaken              = errors.New("user with this email already exists")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrWrongPassword           = errors.New("password is incorrect")
	ErrUserHasOrders           = errors.New("user has orders")
	ErrCannotDeleteSelf        = errors.New("administrators cannot delete themselves")
	ErrDeliveryNotFound        = errors.New("delivery details not found")
	ErrInvalidCheckout         = errors.New("invalid checkout session")
	ErrAmountMismatch          = errors.New("paid amount does not match cart total")
)

// TransitionError is returned when an order cannot move between two states.
// It matches ErrInvalidStatusTransition.
type TransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidStatusTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}
