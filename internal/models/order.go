// internal/models/order.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is written once by the placement transaction. Only Status changes afterwards.
type Order struct {
	BaseModel
	UserID           uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	Total            decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	Status           OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Email            string          `json:"email,omitempty" gorm:"size:255"`
	PaymentReference *string         `json:"payment_reference,omitempty" gorm:"size:255;uniqueIndex"`

	// Relationships
	User  *User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a frozen copy of catalog state at purchase time.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Image     string          `json:"image,omitempty" gorm:"type:text"`
	Note      string          `json:"note,omitempty" gorm:"type:text"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// LineTotal is UnitPrice × Quantity.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemsTotal sums the persisted lines of o.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal())
	}
	return total
}
