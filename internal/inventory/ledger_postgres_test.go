package inventory

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresTryDecrement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	ledger := NewPostgresLedger(db)

	rows := sqlmock.NewRows([]string{"quantity"}).AddRow(7)
	mock.ExpectQuery("UPDATE products").
		WithArgs("p1", 3, sqlmock.AnyArg()).
		WillReturnRows(rows)

	qty, err := ledger.TryDecrement("p1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qty != 7 {
		t.Fatalf("expected new quantity 7, got %d", qty)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresTryDecrementInsufficient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	ledger := NewPostgresLedger(db)

	// guarded update matches no rows, follow-up read explains why
	mock.ExpectQuery("UPDATE products").
		WithArgs("p1", 5, sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)
	stock := sqlmock.NewRows([]string{"uid", "quantity", "deleted_at"}).AddRow("p1", 3, nil)
	mock.ExpectQuery("SELECT uid, quantity, deleted_at FROM products").
		WithArgs("p1").
		WillReturnRows(stock)

	_, err = ledger.TryDecrement("p1", 5)
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.Available != 3 || insufficient.Requested != 5 {
		t.Fatalf("unexpected error detail: %+v", insufficient)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresTryDecrementNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	ledger := NewPostgresLedger(db)

	mock.ExpectQuery("UPDATE products").
		WithArgs("missing", 1, sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT uid, quantity, deleted_at FROM products").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err = ledger.TryDecrement("missing", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresTryDecrementDeleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	ledger := NewPostgresLedger(db)

	mock.ExpectQuery("UPDATE products").
		WithArgs("p1", 1, sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)
	stock := sqlmock.NewRows([]string{"uid", "quantity", "deleted_at"}).
		AddRow("p1", 9, time.Now())
	mock.ExpectQuery("SELECT uid, quantity, deleted_at FROM products").
		WithArgs("p1").
		WillReturnRows(stock)

	_, err = ledger.TryDecrement("p1", 1)
	if !errors.Is(err, ErrDeleted) {
		t.Fatalf("expected ErrDeleted, got %v", err)
	}
}
