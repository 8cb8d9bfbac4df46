package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/repository"
)

type users struct {
	s *Store
}

func (r *users) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range r.s.data.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (r *users) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if r.emailTaken(user.Email, uuid.Nil) {
		return repository.ErrDuplicate
	}
	if user.Role == "" {
		user.Role = models.UserRoleCustomer
	}
	r.s.stamp(&user.BaseModel)
	stored := *user
	stored.DeliveryDetails = nil
	r.s.data.users[stored.ID] = stored
	return nil
}

func (r *users) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if d, ok := r.s.data.delivery[id]; ok {
		u.DeliveryDetails = &d
	}
	return &u, nil
}

func (r *users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.data.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *users) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.data.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return repository.ErrDuplicate
	}
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = r.s.now()
	stored := *user
	stored.DeliveryDetails = nil
	r.s.data.users[user.ID] = stored
	return nil
}

func (r *users) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.users[id]; !ok {
		return repository.ErrNotFound
	}
	for _, o := range r.s.data.orders {
		if o.UserID == id {
			return repository.ErrInUse
		}
	}

	delete(r.s.data.users, id)
	delete(r.s.data.delivery, id)
	for k, item := range r.s.data.carts {
		if item.UserID == id {
			delete(r.s.data.carts, k)
		}
	}
	for k, fav := range r.s.data.favorites {
		if fav.UserID == id {
			delete(r.s.data.favorites, k)
		}
	}
	return nil
}

func (r *users) List(ctx context.Context, filter repository.UserFilter) ([]models.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	search := strings.TrimSpace(filter.Search)
	var list []models.User
	for _, u := range r.s.data.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if search != "" && !containsFold(u.Email, search) && !containsFold(u.FirstName, search) && !containsFold(u.LastName, search) {
			continue
		}
		list = append(list, u)
	}
	sortByCreated(list, func(u models.User) time.Time { return u.CreatedAt }, filter.Order != "asc")
	return paginate(list, filter.Page, filter.Limit), int64(len(list)), nil
}

func (r *users) GetDelivery(ctx context.Context, userID uuid.UUID) (*models.DeliveryDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.data.delivery[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *users) UpsertDelivery(ctx context.Context, details *models.DeliveryDetails) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.users[details.UserID]; !ok {
		return repository.ErrNotFound
	}
	if current, ok := r.s.data.delivery[details.UserID]; ok {
		details.ID = current.ID
		details.CreatedAt = current.CreatedAt
	}
	r.s.stamp(&details.BaseModel)
	r.s.data.delivery[details.UserID] = *details
	return nil
}

func (r *users) DeleteDelivery(ctx context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.delivery[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.data.delivery, userID)
	return nil
}
