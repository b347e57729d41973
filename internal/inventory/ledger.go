package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrDeleted  = errors.New("product is deleted")
)

// InsufficientStockError reports a conditional decrement that failed because
// demand exceeded supply.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

// Stock is a point-in-time view of one product's counter.
type Stock struct {
	ProductID string
	Quantity  int
	Deleted   bool
}

// Ledger owns per-product stock counters. TryDecrement must be atomic and
// conditional: it only succeeds when the product exists, is not soft-deleted
// and currently holds at least the requested amount, and it must never be
// implemented as a read followed by a write.
type Ledger interface {
	TryDecrement(productID string, amount int) (int, error)
	Increment(productID string, amount int) (int, error)
	Stock(productID string) (Stock, error)
	IsAvailable(productID string) bool
}
