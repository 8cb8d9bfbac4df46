// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/repository"
	"github.com/web-prodavnica/backend/internal/utils"
)

type ProductService struct {
	products repository.ProductRepository
}

type CreateProductRequest struct {
	Price         decimal.Decimal `json:"price" validate:"required"`
	Quantity      int             `json:"quantity" validate:"min=0"`
	Images        []string        `json:"images" validate:"required,min=1,dive,url"`
	NameSr        string          `json:"name_sr" validate:"required,max=255"`
	NameEn        string          `json:"name_en" validate:"required,max=255"`
	DescriptionSr string          `json:"description_sr,omitempty"`
	DescriptionEn string          `json:"description_en,omitempty"`
	FeaturesSr    string          `json:"features_sr,omitempty"`
	FeaturesEn    string          `json:"features_en,omitempty"`
	CategorySr    string          `json:"category_sr" validate:"required,max=100"`
	CategoryEn    string          `json:"category_en" validate:"required,max=100"`
}

type UpdateProductRequest struct {
	Price         *decimal.Decimal `json:"price,omitempty"`
	Images        []string         `json:"images,omitempty" validate:"omitnil,min=1,dive,url"`
	NameSr        *string          `json:"name_sr,omitempty" validate:"omitempty,min=1,max=255"`
	NameEn        *string          `json:"name_en,omitempty" validate:"omitempty,min=1,max=255"`
	DescriptionSr *string          `json:"description_sr,omitempty"`
	DescriptionEn *string          `json:"description_en,omitempty"`
	FeaturesSr    *string          `json:"features_sr,omitempty"`
	FeaturesEn    *string          `json:"features_en,omitempty"`
	CategorySr    *string          `json:"category_sr,omitempty" validate:"omitempty,min=1,max=100"`
	CategoryEn    *string          `json:"category_en,omitempty" validate:"omitempty,min=1,max=100"`
}

type UpdateStockRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	InStock  bool
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) ListProducts(ctx context.Context, params ProductSearchParams, lang string) ([]models.Product, int64, error) {
	filter := repository.ProductFilter{
		PaginationParams: params.PaginationParams,
		InStock:          params.InStock,
		PriceMin:         params.PriceMin,
		PriceMax:         params.PriceMax,
	}
	if filter.Sort == "name" {
		filter.Sort = "name_sr"
		if lang == models.LocaleEnglish {
			filter.Sort = "name_en"
		}
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	req.Images = trimAll(req.Images)

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	product := &models.Product{
		Price:         req.Price.Round(2),
		Quantity:      req.Quantity,
		Images:        pq.StringArray(req.Images),
		NameSr:        strings.TrimSpace(req.NameSr),
		NameEn:        strings.TrimSpace(req.NameEn),
		DescriptionSr: req.DescriptionSr,
		DescriptionEn: req.DescriptionEn,
		FeaturesSr:    req.FeaturesSr,
		FeaturesEn:    req.FeaturesEn,
		CategorySr:    strings.TrimSpace(req.CategorySr),
		CategoryEn:    strings.TrimSpace(req.CategoryEn),
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// UpdateProduct changes catalog fields. Stock is only changed through SetStock.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	req.Images = trimAll(req.Images)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.Price != nil && !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		product.Price = req.Price.Round(2)
	}
	if req.Images != nil {
		product.Images = pq.StringArray(req.Images)
	}
	setString(&product.NameSr, req.NameSr)
	setString(&product.NameEn, req.NameEn)
	setString(&product.DescriptionSr, req.DescriptionSr)
	setString(&product.DescriptionEn, req.DescriptionEn)
	setString(&product.FeaturesSr, req.FeaturesSr)
	setString(&product.FeaturesEn, req.FeaturesEn)
	setString(&product.CategorySr, req.CategorySr)
	setString(&product.CategoryEn, req.CategoryEn)

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.products.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrProductNotFound
	case errors.Is(err, repository.ErrInUse):
		return ErrProductInUse
	case err != nil:
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// SetStock overwrites the on-hand quantity. Orders never go through here.
func (s *ProductService) SetStock(ctx context.Context, id uuid.UUID, req *UpdateStockRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.products.SetStock(ctx, id, *req.Quantity)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	return product, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// trimAll trims every entry. Blank entries are kept so validation rejects them.
func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
