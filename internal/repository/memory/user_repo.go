// Package memory provides in-process implementations of the repository
// interfaces. They back the "memory" DB driver and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hashir13-debug/bites-tracking/internal/model"
	"github.com/hashir13-debug/bites-tracking/internal/repository"
)

// UserRepository keeps users in a map keyed by id
type UserRepository struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]*model.User
}

// NewUserRepository creates an empty user store
func NewUserRepository() *UserRepository {
	return &UserRepository{
		nextID: 1,
		users:  make(map[int]*model.User),
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)

// Create stores a new user, returning ErrDuplicate on a taken email or a second superadmin
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
		if user.Role == model.RoleSuperadmin && u.Role == model.RoleSuperadmin {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// FindByEmail returns a copy of the user, or nil if none matches
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

// FindByID returns a copy of the user, or nil if none matches
func (r *UserRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, nil
	}
	found := *u
	return &found, nil
}

// ListByRole returns users with the given role ordered by id
func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := []model.User{}
	for _, u := range r.users {
		if u.Role == role {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// CountByRole counts users with the given role
func (r *UserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// UpdateLastDevice records the client a user last logged in from
func (r *UserRepository) UpdateLastDevice(ctx context.Context, id int, device string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, exists := r.users[id]; exists {
		u.LastDevice = device
	}
	return nil
}

// Delete removes a user. Deleting a missing id is not an error.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}
