package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/web-prodavnica/backend/internal/models"
)

// Placed is handed to every post-commit hook.
type Placed struct {
	Request  PlaceOrderRequest
	Order    *models.Order
	Products []ProductSnapshot
}

// Hook runs after the order is committed. Its error is reported as a
// Warning and never affects the committed order.
type Hook interface {
	Name() string
	AfterCommit(ctx context.Context, placed *Placed) error
}

// Warning describes a post-commit side effect that failed.
type Warning struct {
	Hook    string `json:"hook"`
	Message string `json:"message"`
}

type hookFunc struct {
	name string
	fn   func(ctx context.Context, placed *Placed) error
}

func (h hookFunc) Name() string { return h.name }

func (h hookFunc) AfterCommit(ctx context.Context, placed *Placed) error {
	return h.fn(ctx, placed)
}

// HookFunc adapts fn to a Hook.
func HookFunc(name string, fn func(ctx context.Context, placed *Placed) error) Hook {
	return hookFunc{name: name, fn: fn}
}

// ClearCartHook removes the ordered products from the buyer's cart when the
// order came from it. Lines for other products stay.
func ClearCartHook(carts CartStore) Hook {
	return HookFunc("clear_cart", func(ctx context.Context, placed *Placed) error {
		if placed.Request.Source != SourceCart || len(placed.Request.Lines) == 0 {
			return nil
		}
		ids := make([]uuid.UUID, 0, len(placed.Request.Lines))
		for _, line := range placed.Request.Lines {
			ids = append(ids, line.ProductID)
		}
		return carts.ClearCart(ctx, placed.Request.UserID, ids...)
	})
}

// SummaryLine is one row of the confirmation message.
type SummaryLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	Image       string
}

// Summary is the payload a Notifier renders.
type Summary struct {
	OrderID          string
	Email            string
	Locale           string
	Status           models.OrderStatus
	Total            decimal.Decimal
	PaymentReference string
	PlacedAt         time.Time
	Lines            []SummaryLine
}

// Summarize builds the confirmation payload for a placed order.
func Summarize(placed *Placed) Summary {
	order := placed.Order
	summary := Summary{
		OrderID:  order.ID.String(),
		Email:    order.Email,
		Locale:   placed.Request.Locale,
		Status:   order.Status,
		Total:    order.Total,
		PlacedAt: order.CreatedAt,
	}
	if order.PaymentReference != nil {
		summary.PaymentReference = *order.PaymentReference
	}

	names := make(map[string]string, len(placed.Products))
	for _, p := range placed.Products {
		names[p.ID.String()] = p.Name
	}
	for i := range order.Items {
		item := &order.Items[i]
		summary.Lines = append(summary.Lines, SummaryLine{
			ProductName: names[item.ProductID.String()],
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal(),
			Image:       item.Image,
		})
	}
	return summary
}

// NotifyHook sends the confirmation email when the order has a contact address.
func NotifyHook(notifier Notifier) Hook {
	return HookFunc("notify", func(ctx context.Context, placed *Placed) error {
		if placed.Order.Email == "" {
			return nil
		}
		return notifier.SendOrderConfirmation(ctx, Summarize(placed))
	})
}

func runHooks(ctx context.Context, hooks []Hook, timeout time.Duration, placed *Placed) []Warning {
	var warnings []Warning
	for _, hook := range hooks {
		if err := runHook(ctx, hook, timeout, placed); err != nil {
			warnings = append(warnings, Warning{Hook: hook.Name(), Message: err.Error()})
		}
	}
	return warnings
}

func runHook(ctx context.Context, hook Hook, timeout time.Duration, placed *Placed) (err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook %s panicked: %v", hook.Name(), r)
		}
	}()

	return hook.AfterCommit(ctx, placed)
}
