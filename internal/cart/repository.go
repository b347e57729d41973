package cart

import (
	"errors"
	"sync"
)

var (
	ErrNotFound      = errors.New("cart not found")
	ErrAlreadyExists = errors.New("cart already exists for this owner")
)

type Repository interface {
	// Create fails with ErrAlreadyExists if the owner already has a cart.
	Create(c Cart) error
	GetByOwner(owner string) (Cart, error)
	// Save persists the current line items and total of an existing cart.
	Save(c Cart) error
}

// InMemoryRepository is used by tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[string]Cart)}
}

func (r *InMemoryRepository) Create(c Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[c.Owner]; ok {
		return ErrAlreadyExists
	}
	r.carts[c.Owner] = clone(c)
	return nil
}

func (r *InMemoryRepository) GetByOwner(owner string) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[owner]
	if !ok {
		return Cart{}, ErrNotFound
	}
	return clone(c), nil
}

func (r *InMemoryRepository) Save(c Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[c.Owner]; !ok {
		return ErrNotFound
	}
	r.carts[c.Owner] = clone(c)
	return nil
}

func clone(c Cart) Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
