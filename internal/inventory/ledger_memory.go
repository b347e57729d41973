package inventory

import "sync"

// MemoryLedger keeps counters under one mutex. Used by tests and local
// scenarios; the postgres ledger is the production implementation.
type MemoryLedger struct {
	mu    sync.Mutex
	stock map[string]*Stock
}

func NewMemoryLedger(seed []Stock) *MemoryLedger {
	l := &MemoryLedger{stock: make(map[string]*Stock, len(seed))}
	for _, s := range seed {
		cp := s
		l.stock[s.ProductID] = &cp
	}
	return l
}

func (l *MemoryLedger) TryDecrement(productID string, amount int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.stock[productID]
	if !ok {
		return 0, ErrNotFound
	}
	if s.Deleted {
		return 0, ErrDeleted
	}
	if s.Quantity < amount {
		return 0, &InsufficientStockError{ProductID: productID, Available: s.Quantity, Requested: amount}
	}
	s.Quantity -= amount
	return s.Quantity, nil
}

func (l *MemoryLedger) Increment(productID string, amount int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.stock[productID]
	if !ok {
		return 0, ErrNotFound
	}
	if s.Deleted {
		return 0, ErrDeleted
	}
	s.Quantity += amount
	return s.Quantity, nil
}

func (l *MemoryLedger) Stock(productID string) (Stock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.stock[productID]
	if !ok {
		return Stock{}, ErrNotFound
	}
	return *s, nil
}

func (l *MemoryLedger) IsAvailable(productID string) bool {
	s, err := l.Stock(productID)
	return err == nil && !s.Deleted
}

// MarkDeleted flips the soft-delete flag, mirroring what a product soft
// delete does against the shared store.
func (l *MemoryLedger) MarkDeleted(productID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.stock[productID]; ok {
		s.Deleted = true
	}
}
