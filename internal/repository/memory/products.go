package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/repository"
)

type products struct {
	s *Store
}

func (r *products) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	search := strings.TrimSpace(filter.Search)
	var list []models.Product
	for _, p := range r.s.data.products {
		if search != "" && !containsFold(p.NameSr, search) && !containsFold(p.NameEn, search) {
			continue
		}
		if filter.Category != "" && p.CategorySr != filter.Category && p.CategoryEn != filter.Category {
			continue
		}
		if filter.InStock && p.Quantity <= 0 {
			continue
		}
		if filter.PriceMin != nil && p.Price.LessThan(*filter.PriceMin) {
			continue
		}
		if filter.PriceMax != nil && p.Price.GreaterThan(*filter.PriceMax) {
			continue
		}
		list = append(list, cloneProduct(p))
	}

	desc := filter.Order != "asc"
	sortByCreated(list, func(p models.Product) time.Time { return p.CreatedAt }, desc)
	switch filter.Sort {
	case "price":
		sort.SliceStable(list, func(i, j int) bool {
			if desc {
				return list[i].Price.GreaterThan(list[j].Price)
			}
			return list[i].Price.LessThan(list[j].Price)
		})
	case "name_sr", "name_en":
		name := func(p models.Product) string {
			if filter.Sort == "name_en" {
				return p.NameEn
			}
			return p.NameSr
		}
		sort.SliceStable(list, func(i, j int) bool {
			if desc {
				return name(list[i]) > name(list[j])
			}
			return name(list[i]) < name(list[j])
		})
	case "quantity":
		sort.SliceStable(list, func(i, j int) bool {
			if desc {
				return list[i].Quantity > list[j].Quantity
			}
			return list[i].Quantity < list[j].Quantity
		})
	}

	return paginate(list, filter.Page, filter.Limit), int64(len(list)), nil
}

func (r *products) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.data.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r *products) Create(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.data.products[product.ID]; exists {
		return repository.ErrDuplicate
	}
	if product.Quantity < 0 || product.Price.IsNegative() {
		return errCheckViolation
	}
	r.s.stamp(&product.BaseModel)
	r.s.data.products[product.ID] = cloneProduct(*product)
	return nil
}

func (r *products) Update(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.data.products[product.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if product.Quantity < 0 || product.Price.IsNegative() {
		return errCheckViolation
	}
	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = r.s.now()
	r.s.data.products[product.ID] = cloneProduct(*product)
	return nil
}

func (r *products) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.products[id]; !ok {
		return repository.ErrNotFound
	}
	for _, lines := range r.s.data.items {
		for _, line := range lines {
			if line.ProductID == id {
				return repository.ErrInUse
			}
		}
	}

	delete(r.s.data.products, id)
	for k, item := range r.s.data.carts {
		if item.ProductID == id {
			delete(r.s.data.carts, k)
		}
	}
	for k, fav := range r.s.data.favorites {
		if fav.ProductID == id {
			delete(r.s.data.favorites, k)
		}
	}
	return nil
}

func (r *products) SetStock(ctx context.Context, id uuid.UUID, quantity int) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.data.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if quantity < 0 {
		return nil, errCheckViolation
	}
	p.Quantity = quantity
	p.UpdatedAt = r.s.now()
	r.s.data.products[id] = p

	p = cloneProduct(p)
	return &p, nil
}
