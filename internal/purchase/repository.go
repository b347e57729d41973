package purchase

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("purchase not found")

type Repository interface {
	Create(p Purchase) error
	ListByOwner(owner string) ([]Purchase, error)
	// ListByProduct is a reporting query over the snapshots; it never
	// mutates them.
	ListByProduct(productID string) ([]Purchase, error)
}

type InMemoryRepository struct {
	mu        sync.RWMutex
	purchases []Purchase
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(p Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purchases = append(r.purchases, p)
	return nil
}

func (r *InMemoryRepository) ListByOwner(owner string) ([]Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Purchase, 0)
	for _, p := range r.purchases {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListByProduct(productID string) ([]Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Purchase, 0)
	for _, p := range r.purchases {
		for _, item := range p.Products {
			if item.ProductID == productID {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}
