// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/web-prodavnica/backend/internal/metrics"
	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
	"github.com/web-prodavnica/backend/internal/repository"
	"github.com/web-prodavnica/backend/internal/utils"
)

// OrderPlacer is satisfied by *orders.Placer.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req orders.PlaceOrderRequest) (*orders.PlaceOrderResult, error)
}

type OrderService struct {
	placer  OrderPlacer
	orders  repository.OrderRepository
	users   repository.UserRepository
	metrics *metrics.Metrics
}

type OrderLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Note      string    `json:"note,omitempty" validate:"max=500"`
}

// PlaceOrderRequest orders the cart when Lines is empty.
type PlaceOrderRequest struct {
	Lines []OrderLineRequest `json:"lines,omitempty" validate:"omitempty,dive"`
	Email string             `json:"email,omitempty" validate:"omitempty,email"`
}

type AdminCreateOrderRequest struct {
	UserID           uuid.UUID          `json:"user_id" validate:"required"`
	Lines            []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
	Email            string             `json:"email,omitempty" validate:"omitempty,email"`
	Status           models.OrderStatus `json:"status,omitempty" validate:"omitempty,order_status"`
	PaymentReference string             `json:"payment_reference,omitempty" validate:"max=255"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,order_status"`
}

type OrderSearchParams struct {
	utils.PaginationParams
	UserID *uuid.UUID
	Status models.OrderStatus
}

func NewOrderService(placer OrderPlacer, orderRepo repository.OrderRepository, users repository.UserRepository, m *metrics.Metrics) *OrderService {
	return &OrderService{
		placer:  placer,
		orders:  orderRepo,
		users:   users,
		metrics: m,
	}
}

// PlaceOrder orders the explicit lines of req, or the user's cart when there are none.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *PlaceOrderRequest, lang string) (*orders.PlaceOrderResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	email, err := s.contactEmail(ctx, userID, req.Email)
	if err != nil {
		return nil, err
	}

	placeReq := orders.PlaceOrderRequest{
		UserID:       userID,
		Lines:        toLineRequests(req.Lines),
		ContactEmail: email,
		Source:       orders.SourceDirect,
		Locale:       lang,
	}
	if len(req.Lines) == 0 {
		placeReq.Source = orders.SourceCart
	}

	return s.place(ctx, placeReq)
}

// AdminCreateOrder enters an order on behalf of any user. The cart is left alone.
func (s *OrderService) AdminCreateOrder(ctx context.Context, req *AdminCreateOrderRequest, lang string) (*orders.PlaceOrderResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	email, err := s.contactEmail(ctx, req.UserID, req.Email)
	if err != nil {
		return nil, err
	}

	return s.place(ctx, orders.PlaceOrderRequest{
		UserID:           req.UserID,
		Lines:            toLineRequests(req.Lines),
		ContactEmail:     email,
		PaymentReference: req.PaymentReference,
		InitialStatus:    req.Status,
		Source:           orders.SourceAdmin,
		Locale:           lang,
	})
}

// PlaceFromCheckout orders the given cart lines as paid under the checkout
// reference. The placement is rejected with orders.ErrTotalMismatch unless the
// lines price to exactly amount inside the transaction.
func (s *OrderService) PlaceFromCheckout(ctx context.Context, userID uuid.UUID, lines []orders.LineRequest, amount decimal.Decimal, reference, lang string) (*orders.PlaceOrderResult, error) {
	email, err := s.contactEmail(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	return s.place(ctx, orders.PlaceOrderRequest{
		UserID:           userID,
		Lines:            lines,
		ContactEmail:     email,
		PaymentReference: reference,
		InitialStatus:    models.OrderStatusPaid,
		Source:           orders.SourceCart,
		Locale:           lang,
		ExpectedTotal:    &amount,
	})
}

func (s *OrderService) place(ctx context.Context, req orders.PlaceOrderRequest) (*orders.PlaceOrderResult, error) {
	start := time.Now()
	result, err := s.placer.PlaceOrder(ctx, req)
	if err != nil {
		kind := orders.KindPersistenceFailure
		if oe, ok := orders.AsError(err); ok {
			kind = oe.Kind
		}
		s.metrics.OrderRejected(string(kind), time.Since(start))
		return nil, err
	}

	failed := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		failed = append(failed, w.Hook)
	}
	s.metrics.OrderPlaced(string(req.Source), failed, time.Since(start))

	logrus.WithFields(logrus.Fields{
		"order_id": result.Order.ID,
		"user_id":  req.UserID,
		"source":   req.Source,
		"total":    result.Total.String(),
	}).Info("Order placed")

	return result, nil
}

// contactEmail falls back to the account email. It also confirms the user exists.
func (s *OrderService) contactEmail(ctx context.Context, userID uuid.UUID, requested string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("database error: %w", err)
	}

	if email := strings.TrimSpace(requested); email != "" {
		return email, nil
	}
	return user.Email, nil
}

// GetOrder returns the order when the requester owns it or is an admin.
// Other users get ErrOrderNotFound.
func (s *OrderService) GetOrder(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) (*models.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	return s.ListOrders(ctx, OrderSearchParams{PaginationParams: params, UserID: &userID})
}

func (s *OrderService) ListOrders(ctx context.Context, params OrderSearchParams) ([]models.Order, int64, error) {
	if params.Status != "" && !params.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownStatus, params.Status)
	}

	list, total, err := s.orders.List(ctx, repository.OrderFilter{
		PaginationParams: params.PaginationParams,
		UserID:           params.UserID,
		Status:           params.Status,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return list, total, nil
}

// UpdateStatus moves the order along the lifecycle. Stock is never touched here.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	order, err := s.GetOrder(ctx, id, uuid.Nil, true)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(req.Status) {
		return nil, &TransitionError{From: order.Status, To: req.Status}
	}

	if err := s.orders.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": id,
		"from":     order.Status,
		"to":       req.Status,
	}).Info("Order status changed")

	order.Status = req.Status
	return order, nil
}

// DeleteOrder removes the order and its lines. Stock is not restored.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	err := s.orders.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (s *OrderService) FindByPaymentReference(ctx context.Context, reference string) (*models.Order, error) {
	order, err := s.orders.FindByPaymentReference(ctx, reference)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return order, nil
}

func toLineRequests(lines []OrderLineRequest) []orders.LineRequest {
	if len(lines) == 0 {
		return nil
	}
	out := make([]orders.LineRequest, len(lines))
	for i, l := range lines {
		out[i] = orders.LineRequest{ProductID: l.ProductID, Quantity: l.Quantity, Note: l.Note}
	}
	return out
}
