// internal/models/product.go
package models

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;check:chk_products_price,price >= 0"`
	Quantity int             `json:"quantity" gorm:"not null;default:0;check:chk_products_quantity,quantity >= 0"`
	Images   pq.StringArray  `json:"images" gorm:"type:text[]"`

	NameSr        string `json:"name_sr" gorm:"size:255;not null"`
	NameEn        string `json:"name_en" gorm:"size:255;not null"`
	DescriptionSr string `json:"description_sr,omitempty" gorm:"type:text"`
	DescriptionEn string `json:"description_en,omitempty" gorm:"type:text"`
	FeaturesSr    string `json:"features_sr,omitempty" gorm:"type:text"`
	FeaturesEn    string `json:"features_en,omitempty" gorm:"type:text"`
	CategorySr    string `json:"category_sr" gorm:"size:100;not null;index"`
	CategoryEn    string `json:"category_en" gorm:"size:100;not null;index"`
}

// PrimaryImage returns the first image reference, or "" when the product has none.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// InStock reports whether at least n units are on hand.
func (p *Product) InStock(n int) bool {
	return p.Quantity >= n
}

// LocalizedProduct is the single-locale view served to storefront clients.
type LocalizedProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Features    string          `json:"features,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Images      []string        `json:"images"`
}

// Localize picks the fields for lang, falling back to Serbian for unknown locales.
func (p *Product) Localize(lang string) LocalizedProduct {
	view := LocalizedProduct{
		ID:       p.ID.String(),
		Price:    p.Price,
		Quantity: p.Quantity,
		Images:   []string(p.Images),
	}
	if view.Images == nil {
		view.Images = []string{}
	}

	if lang == LocaleEnglish {
		view.Name = p.NameEn
		view.Description = p.DescriptionEn
		view.Features = p.FeaturesEn
		view.Category = p.CategoryEn
		return view
	}

	view.Name = p.NameSr
	view.Description = p.DescriptionSr
	view.Features = p.FeaturesSr
	view.Category = p.CategorySr
	return view
}

// Name returns the product name in lang.
func (p *Product) Name(lang string) string {
	if lang == LocaleEnglish {
		return p.NameEn
	}
	return p.NameSr
}
