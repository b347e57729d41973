package product

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrDeleted  = errors.New("product is deleted")
)

type Repository interface {
	// List returns one page of non-deleted products plus the total count.
	List(page, limit int) ([]Product, int, error)
	GetByUID(uid string) (Product, error)
	Create(p Product) (Product, error)
	Update(uid string, upd Update) (Product, error)
	SoftDelete(uid string, at time.Time) error
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List(page, limit int) ([]Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if !p.Deleted() {
			active = append(active, p)
		}
	}

	start := (page - 1) * limit
	if start >= len(active) {
		return []Product{}, len(active), nil
	}
	end := start + limit
	if end > len(active) {
		end = len(active)
	}
	out := make([]Product, end-start)
	copy(out, active[start:end])
	return out, len(active), nil
}

func (r *InMemoryRepository) GetByUID(uid string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.UID == uid {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(uid string, upd Update) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].UID != uid {
			continue
		}
		if r.storage[i].Deleted() {
			return Product{}, ErrDeleted
		}
		if upd.Name != nil {
			r.storage[i].Name = *upd.Name
		}
		if upd.Description != nil {
			r.storage[i].Description = *upd.Description
		}
		if upd.Price != nil {
			r.storage[i].Price = *upd.Price
		}
		if upd.Quantity != nil {
			r.storage[i].Quantity = *upd.Quantity
		}
		r.storage[i].UpdatedAt = time.Now().UTC()
		return r.storage[i], nil
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) SoftDelete(uid string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].UID != uid {
			continue
		}
		if r.storage[i].Deleted() {
			return ErrDeleted
		}
		r.storage[i].DeletedAt = &at
		r.storage[i].UpdatedAt = at
		return nil
	}
	return ErrNotFound
}
