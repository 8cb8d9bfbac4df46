package orders

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/web-prodavnica/backend/internal/models"
)

// Source tells where a placement request came from.
type Source string

const (
	SourceCart   Source = "cart"
	SourceDirect Source = "direct"
	SourceAdmin  Source = "admin"
)

type LineRequest struct {
	ProductID uuid.UUID
	Quantity  int
	Note      string
}

type PlaceOrderRequest struct {
	UserID           uuid.UUID
	Lines            []LineRequest
	ContactEmail     string
	PaymentReference string
	InitialStatus    models.OrderStatus
	Source           Source
	Locale           string
	// ExpectedTotal, when set, aborts the placement unless the total priced
	// inside the transaction equals it.
	ExpectedTotal *decimal.Decimal
}

// normalize validates req and merges repeated products into one line,
// preserving the order in which products first appear.
func normalize(req PlaceOrderRequest, defaultStatus models.OrderStatus) (PlaceOrderRequest, error) {
	if req.UserID == uuid.Nil {
		return req, invalidRequest("user is required")
	}
	if len(req.Lines) == 0 {
		return req, invalidRequest("at least one line is required")
	}

	switch req.Source {
	case "":
		req.Source = SourceDirect
	case SourceCart, SourceDirect, SourceAdmin:
	default:
		return req, invalidRequest("unknown source %q", req.Source)
	}

	if req.InitialStatus == "" {
		req.InitialStatus = defaultStatus
	}
	if !req.InitialStatus.Valid() {
		return req, invalidRequest("unknown status %q", req.InitialStatus)
	}

	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
	req.PaymentReference = strings.TrimSpace(req.PaymentReference)
	if req.Locale != models.LocaleEnglish {
		req.Locale = models.LocaleSerbian
	}

	merged := make([]LineRequest, 0, len(req.Lines))
	index := make(map[uuid.UUID]int, len(req.Lines))
	for _, line := range req.Lines {
		if line.ProductID == uuid.Nil {
			return req, invalidRequest("line without product")
		}
		if line.Quantity <= 0 {
			return req, invalidRequest("quantity for product %s must be positive", line.ProductID)
		}
		if i, seen := index[line.ProductID]; seen {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	req.Lines = merged

	return req, nil
}
