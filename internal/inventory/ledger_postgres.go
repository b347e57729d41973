package inventory

import (
	"database/sql"
	"time"
)

// PostgresLedger mutates the products table through guarded single-statement
// updates, so two concurrent checkouts can never both pass a stale read.
type PostgresLedger struct {
	db *sql.DB
}

func NewPostgresLedger(db *sql.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

func (l *PostgresLedger) TryDecrement(productID string, amount int) (int, error) {
	var newQty int
	err := l.db.QueryRow(`UPDATE products
        SET quantity = quantity - $2, updated_at = $3
        WHERE uid = $1 AND deleted_at IS NULL AND quantity >= $2
        RETURNING quantity`,
		productID, amount, time.Now().UTC()).Scan(&newQty)
	if err == sql.ErrNoRows {
		return 0, l.classifyFailure(productID, amount)
	}
	if err != nil {
		return 0, err
	}
	return newQty, nil
}

func (l *PostgresLedger) Increment(productID string, amount int) (int, error) {
	var newQty int
	err := l.db.QueryRow(`UPDATE products
        SET quantity = quantity + $2, updated_at = $3
        WHERE uid = $1 AND deleted_at IS NULL
        RETURNING quantity`,
		productID, amount, time.Now().UTC()).Scan(&newQty)
	if err == sql.ErrNoRows {
		return 0, l.classifyFailure(productID, amount)
	}
	if err != nil {
		return 0, err
	}
	return newQty, nil
}

func (l *PostgresLedger) Stock(productID string) (Stock, error) {
	var s Stock
	var deleted sql.NullTime
	err := l.db.QueryRow(`SELECT uid, quantity, deleted_at FROM products WHERE uid = $1`,
		productID).Scan(&s.ProductID, &s.Quantity, &deleted)
	if err == sql.ErrNoRows {
		return Stock{}, ErrNotFound
	}
	if err != nil {
		return Stock{}, err
	}
	s.Deleted = deleted.Valid
	return s, nil
}

func (l *PostgresLedger) IsAvailable(productID string) bool {
	s, err := l.Stock(productID)
	return err == nil && !s.Deleted
}

// classifyFailure runs after a guarded update matched no rows: the product is
// either absent, soft-deleted, or short on stock. The follow-up read is only
// for the error report; the guard above stays the single enforcement point.
func (l *PostgresLedger) classifyFailure(productID string, requested int) error {
	s, err := l.Stock(productID)
	if err != nil {
		return err
	}
	if s.Deleted {
		return ErrDeleted
	}
	return &InsufficientStockError{ProductID: productID, Available: s.Quantity, Requested: requested}
}
