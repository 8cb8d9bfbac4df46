package orders

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by Tx.GetProduct when no product has the given id.
var ErrNotFound = errors.New("record not found")

// ErrTotalMismatch is wrapped by the InvalidRequest error returned when the
// priced total differs from PlaceOrderRequest.ExpectedTotal.
var ErrTotalMismatch = errors.New("order total does not match expected total")

// Kind classifies why an order could not be placed.
type Kind string

const (
	KindInvalidRequest     Kind = "invalid_request"
	KindProductNotFound    Kind = "product_not_found"
	KindInsufficientStock  Kind = "insufficient_stock"
	KindPersistenceFailure Kind = "persistence_failure"
)

// Error is the only error type PlaceOrder returns. No partial order exists
// when an Error is returned.
type Error struct {
	Kind      Kind
	Message   string
	ProductID uuid.UUID
	Requested int
	Available int
	Err       error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindProductNotFound:
		return fmt.Sprintf("product %s not found", e.ProductID)
	case KindInsufficientStock:
		return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
			e.ProductID, e.Requested, e.Available)
	case KindPersistenceFailure:
		if e.Err != nil {
			return "failed to persist order: " + e.Err.Error()
		}
		return "failed to persist order"
	default:
		if e.Message != "" {
			return "invalid order request: " + e.Message
		}
		return "invalid order request"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Shortfall is how many units are missing for an InsufficientStock error.
func (e *Error) Shortfall() int {
	if e.Kind != KindInsufficientStock || e.Requested <= e.Available {
		return 0
	}
	return e.Requested - e.Available
}

func invalidRequest(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

func totalMismatch(expected, actual decimal.Decimal) *Error {
	return &Error{
		Kind:    KindInvalidRequest,
		Message: fmt.Sprintf("total %s does not match expected %s", actual.StringFixed(2), expected.StringFixed(2)),
		Err:     ErrTotalMismatch,
	}
}

func productNotFound(id uuid.UUID) *Error {
	return &Error{Kind: KindProductNotFound, ProductID: id}
}

func insufficientStock(id uuid.UUID, requested, available int) *Error {
	return &Error{Kind: KindInsufficientStock, ProductID: id, Requested: requested, Available: available}
}

func persistenceFailure(err error) *Error {
	return &Error{Kind: KindPersistenceFailure, Err: err}
}

// AsError extracts the *Error from err, if any.
func AsError(err error) (*Error, bool) {
	var oe *Error
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	oe, ok := AsError(err)
	return ok && oe.Kind == kind
}

// classify turns anything escaping the transaction into an *Error.
func classify(err error) *Error {
	if oe, ok := AsError(err); ok {
		return oe
	}
	return persistenceFailure(err)
}
