package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/repository"
)

type orderRepo struct {
	s *Store
}

// load returns the order with a copy of its lines. Callers hold mu.
func (r *orderRepo) load(o models.Order) models.Order {
	o.Items = append([]models.OrderItem{}, r.s.data.items[o.ID]...)
	return o
}

func (r *orderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]models.Order, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []models.Order
	for _, o := range r.s.data.orders {
		if filter.UserID != nil && o.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		list = append(list, r.load(o))
	}

	desc := filter.Order != "asc"
	sortByCreated(list, func(o models.Order) time.Time { return o.CreatedAt }, desc)
	if filter.Sort == "total" {
		sort.SliceStable(list, func(i, j int) bool {
			if desc {
				return list[i].Total.GreaterThan(list[j].Total)
			}
			return list[i].Total.LessThan(list[j].Total)
		})
	}

	return paginate(list, filter.Page, filter.Limit), int64(len(list)), nil
}

func (r *orderRepo) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o = r.load(o)
	return &o, nil
}

func (r *orderRepo) FindByPaymentReference(ctx context.Context, reference string) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range r.s.data.orders {
		if o.PaymentReference != nil && *o.PaymentReference == reference {
			o = r.load(o)
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.data.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = r.s.now()
	r.s.data.orders[id] = o
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.data.orders, id)
	delete(r.s.data.items, id)
	return nil
}

func (r *orderRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, o := range r.s.data.orders {
		if o.UserID == userID {
			count++
		}
	}
	return count, nil
}
