// Package memory implements the repository contracts and orders.Store in
// process memory. One mutex guards every entity, so a transaction sees and
// produces a consistent state; a failed transaction restores the state it
// started from.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
	"github.com/web-prodavnica/backend/internal/repository"
)

var errCheckViolation = errors.New("check constraint violated")

type state struct {
	products  map[uuid.UUID]models.Product
	carts     map[uuid.UUID]models.CartItem
	favorites map[uuid.UUID]models.Favorite
	orders    map[uuid.UUID]models.Order
	items     map[uuid.UUID][]models.OrderItem
	users     map[uuid.UUID]models.User
	delivery  map[uuid.UUID]models.DeliveryDetails
}

func newState() state {
	return state{
		products:  make(map[uuid.UUID]models.Product),
		carts:     make(map[uuid.UUID]models.CartItem),
		favorites: make(map[uuid.UUID]models.Favorite),
		orders:    make(map[uuid.UUID]models.Order),
		items:     make(map[uuid.UUID][]models.OrderItem),
		users:     make(map[uuid.UUID]models.User),
		delivery:  make(map[uuid.UUID]models.DeliveryDetails),
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = cloneProduct(v)
	}
	for k, v := range s.carts {
		c.carts[k] = v
	}
	for k, v := range s.favorites {
		c.favorites[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]models.OrderItem(nil), v...)
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.delivery {
		c.delivery[k] = v
	}
	return c
}

type Store struct {
	mu    sync.Mutex
	data  state
	clock time.Time
}

func New() *Store {
	return &Store{data: newState()}
}

// now returns a strictly increasing timestamp so listings sort stably.
// Callers hold mu.
func (s *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.clock) {
		t = s.clock.Add(time.Microsecond)
	}
	s.clock = t
	return t
}

func (s *Store) stamp(base *models.BaseModel) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	now := s.now()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

func (s *Store) Products() repository.ProductRepository   { return &products{s} }
func (s *Store) Carts() repository.CartRepository         { return &carts{s} }
func (s *Store) Favorites() repository.FavoriteRepository { return &favorites{s} }
func (s *Store) Orders() repository.OrderRepository       { return &orderRepo{s} }
func (s *Store) Users() repository.UserRepository         { return &users{s} }

// WithinTx implements orders.Store.
func (s *Store) WithinTx(ctx context.Context, fn func(tx orders.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
	}()

	if err := fn(&tx{s}); err != nil {
		return err
	}
	committed = true
	return nil
}

type tx struct {
	s *Store
}

func (t *tx) GetProduct(ctx context.Context, id uuid.UUID, lang string) (orders.ProductSnapshot, error) {
	p, ok := t.s.data.products[id]
	if !ok {
		return orders.ProductSnapshot{}, orders.ErrNotFound
	}
	return orders.SnapshotOf(&p, lang), nil
}

func (t *tx) DecrementStock(ctx context.Context, id uuid.UUID, amount int) (int64, error) {
	p, ok := t.s.data.products[id]
	if !ok || p.Quantity < amount {
		return 0, nil
	}
	p.Quantity -= amount
	p.UpdatedAt = t.s.now()
	t.s.data.products[id] = p
	return 1, nil
}

func (t *tx) InsertOrder(ctx context.Context, order *models.Order) error {
	if _, exists := t.s.data.orders[order.ID]; exists && order.ID != uuid.Nil {
		return repository.ErrDuplicate
	}
	if _, ok := t.s.data.users[order.UserID]; !ok {
		return repository.ErrNotFound
	}
	if order.PaymentReference != nil {
		for _, o := range t.s.data.orders {
			if o.PaymentReference != nil && *o.PaymentReference == *order.PaymentReference {
				return repository.ErrDuplicate
			}
		}
	}

	t.s.stamp(&order.BaseModel)
	stored := *order
	stored.Items = nil
	stored.User = nil
	t.s.data.orders[stored.ID] = stored
	return nil
}

func (t *tx) InsertOrderLine(ctx context.Context, line *models.OrderItem) error {
	if _, ok := t.s.data.orders[line.OrderID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := t.s.data.products[line.ProductID]; !ok {
		return repository.ErrNotFound
	}
	if line.Quantity <= 0 {
		return errCheckViolation
	}

	t.s.stamp(&line.BaseModel)
	stored := *line
	stored.Product = nil
	t.s.data.items[line.OrderID] = append(t.s.data.items[line.OrderID], stored)
	return nil
}

func cloneProduct(p models.Product) models.Product {
	p.Images = append([]string(nil), p.Images...)
	return p
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func paginate[T any](list []T, page, limit int) []T {
	if limit <= 0 {
		return list
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(list) {
		return []T{}
	}
	end := start + limit
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

func sortByCreated[T any](list []T, created func(T) time.Time, desc bool) {
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return created(list[i]).After(created(list[j]))
		}
		return created(list[i]).Before(created(list[j]))
	})
}
