// internal/services/payment_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/web-prodavnica/backend/internal/config"
	"github.com/web-prodavnica/backend/internal/orders"
	"github.com/web-prodavnica/backend/internal/utils"
)

// PaymentService runs the simulated card checkout: a signed session is issued
// for the current cart and the completion callback turns it into a paid order.
type PaymentService struct {
	config *config.Config
	carts  *CartService
	orders *OrderService
	now    func() time.Time
}

type CheckoutSession struct {
	OrderNumber string          `json:"order_number"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Provider    string          `json:"provider"`
	Token       string          `json:"token"`
	RedirectURL string          `json:"redirect_url"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Simulation  bool            `json:"simulation"`
}

type CompleteCheckoutRequest struct {
	Token  string          `json:"token" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type CheckoutResult struct {
	*orders.PlaceOrderResult
	// Replayed is true when the session had already been completed.
	Replayed bool `json:"replayed"`
}

func NewPaymentService(config *config.Config, carts *CartService, orderService *OrderService) *PaymentService {
	return &PaymentService{
		config: config,
		carts:  carts,
		orders: orderService,
		now:    time.Now,
	}
}

// CreateCheckout prices the cart server-side and signs a checkout session for it.
func (s *PaymentService) CreateCheckout(ctx context.Context, userID uuid.UUID, lang string) (*CheckoutSession, error) {
	total, count, err := s.carts.Total(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrCartEmpty
	}

	suffix, err := utils.GenerateReferenceCode(8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}
	now := s.now()
	orderNumber := fmt.Sprintf("%s-%d-%s", s.config.Payment.OrderPrefix, now.Unix(), suffix)

	token, err := utils.GenerateCheckoutToken(userID, orderNumber, total, s.config.Payment.Currency, s.config.Payment.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign checkout session: %w", err)
	}

	redirect, err := s.redirectURL(orderNumber, token, total, lang)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"order_number": orderNumber,
		"amount":       total.String(),
		"provider":     s.config.Payment.Provider,
	}).Info("Checkout session created")

	return &CheckoutSession{
		OrderNumber: orderNumber,
		Amount:      total,
		Currency:    s.config.Payment.Currency,
		Provider:    s.config.Payment.Provider,
		Token:       token,
		RedirectURL: redirect,
		ExpiresAt:   now.Add(s.config.Payment.SessionTTL),
		Simulation:  true,
	}, nil
}

// CompleteCheckout places the paid order for a session. Completing the same
// session twice returns the order created the first time.
func (s *PaymentService) CompleteCheckout(ctx context.Context, userID uuid.UUID, req *CompleteCheckoutRequest, lang string) (*CheckoutResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	claims, err := utils.ValidateCheckoutToken(req.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCheckout, err)
	}
	if claims.UserID != userID.String() {
		return nil, ErrInvalidCheckout
	}
	if !req.Amount.Equal(claims.Amount) {
		return nil, ErrAmountMismatch
	}

	if existing, ok, err := s.completed(ctx, claims.OrderNumber); err != nil || ok {
		return existing, err
	}

	result, err := s.place(ctx, userID, claims, lang)
	if err != nil {
		// A concurrent completion of the same session may have won.
		if existing, ok, lookupErr := s.completed(ctx, claims.OrderNumber); lookupErr == nil && ok {
			return existing, nil
		}
		return nil, err
	}

	return &CheckoutResult{PlaceOrderResult: result}, nil
}

func (s *PaymentService) place(ctx context.Context, userID uuid.UUID, claims *utils.CheckoutClaims, lang string) (*orders.PlaceOrderResult, error) {
	// The cart may have changed since the session was signed. The lines read
	// here are the ones ordered, and they must still price to the paid amount.
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	result, err := s.orders.PlaceFromCheckout(ctx, userID, lines, claims.Amount, claims.OrderNumber, lang)
	if errors.Is(err, orders.ErrTotalMismatch) {
		return nil, ErrAmountMismatch
	}
	return result, err
}

func (s *PaymentService) completed(ctx context.Context, reference string) (*CheckoutResult, bool, error) {
	order, err := s.orders.FindByPaymentReference(ctx, reference)
	if errors.Is(err, ErrOrderNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &CheckoutResult{
		PlaceOrderResult: &orders.PlaceOrderResult{Order: order, Total: order.Total},
		Replayed:         true,
	}, true, nil
}

func (s *PaymentService) redirectURL(orderNumber, token string, amount decimal.Decimal, lang string) (string, error) {
	u, err := url.Parse(strings.TrimRight(s.config.Frontend.BaseURL, "/") + "/uspjesno_placanje")
	if err != nil {
		return "", fmt.Errorf("invalid frontend url: %w", err)
	}

	q := u.Query()
	q.Set("provider", s.config.Payment.Provider)
	q.Set("order", orderNumber)
	q.Set("amount", amount.StringFixed(2))
	q.Set("token", token)
	q.Set("lang", lang)
	q.Set("simulation", "true")
	u.RawQuery = q.Encode()

	return u.String(), nil
}
