package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/everestcart/storefront-api/internal/domains/users/domain"
	"github.com/everestcart/storefront-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory account persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	byID    map[int64]*domain.User
	byEmail map[string]int64
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{byID: map[int64]*domain.User{}, byEmail: map[string]int64{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, ok := r.byEmail[user.Email]; ok && existingID != user.ID {
		return nil, ports.ErrDuplicateEmail
	}
	clone := *user
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else {
		if prev, ok := r.byID[clone.ID]; ok && prev.Email != clone.Email {
			delete(r.byEmail, prev.Email)
		}
		if clone.ID > r.nextID {
			r.nextID = clone.ID
		}
	}
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}
