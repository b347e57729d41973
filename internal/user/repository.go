package user

import (
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Repository interface {
	Create(u User) (User, error)
	GetByID(id string) (User, error)
	// GetByEmail only considers active (non-deleted) users, so an email
	// freed by a compensating soft delete can be registered again.
	GetByEmail(email string) (User, error)
	SoftDelete(id string, at time.Time) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]User)}
}

func (r *InMemoryRepository) Create(u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if !existing.Deleted() && strings.EqualFold(existing.Email, u.Email) {
			return User{}, ErrEmailExists
		}
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *InMemoryRepository) GetByID(id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if !u.Deleted() && strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) SoftDelete(id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.DeletedAt = &at
	u.UpdatedAt = at
	r.users[id] = u
	return nil
}
