package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/web-prodavnica/backend/internal/models"
)

// NewOrderLine builds the persisted line for a resolved product. Price and
// image are copied so later catalog edits never reach order history.
func NewOrderLine(orderID uuid.UUID, product ProductSnapshot, line LineRequest) models.OrderItem {
	return models.OrderItem{
		OrderID:   orderID,
		ProductID: product.ID,
		Quantity:  line.Quantity,
		UnitPrice: product.Price,
		Image:     product.PrimaryImage,
		Note:      line.Note,
	}
}

// NewOrderHeader builds the order row from a normalized request and the
// server-computed total.
func NewOrderHeader(req PlaceOrderRequest, total decimal.Decimal) models.Order {
	order := models.Order{
		UserID: req.UserID,
		Total:  total,
		Status: req.InitialStatus,
		Email:  req.ContactEmail,
	}
	order.ID = uuid.New()
	if req.PaymentReference != "" {
		ref := req.PaymentReference
		order.PaymentReference = &ref
	}
	return order
}

// ComputeTotal returns Σ price × quantity. products[i] must correspond to lines[i].
func ComputeTotal(products []ProductSnapshot, lines []LineRequest) decimal.Decimal {
	total := decimal.Zero
	for i, line := range lines {
		total = total.Add(products[i].Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
