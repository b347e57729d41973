package cart

import (
	"database/sql"
	"encoding/json"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(c Cart) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	// ON CONFLICT DO NOTHING keeps cart-per-owner uniqueness race-free; a
	// second insert simply matches zero rows.
	res, err := r.db.Exec(`INSERT INTO carts (uid, owner, products, total_price, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $5)
        ON CONFLICT (owner) DO NOTHING`,
		c.UID, c.Owner, items, c.TotalPrice, now)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *PostgresRepository) GetByOwner(owner string) (Cart, error) {
	var c Cart
	var raw []byte
	err := r.db.QueryRow(`SELECT uid, owner, products, total_price FROM carts WHERE owner = $1`,
		owner).Scan(&c.UID, &c.Owner, &raw, &c.TotalPrice)
	if err == sql.ErrNoRows {
		return Cart{}, ErrNotFound
	}
	if err != nil {
		return Cart{}, err
	}
	if err := json.Unmarshal(raw, &c.Items); err != nil {
		return Cart{}, err
	}
	if c.Items == nil {
		c.Items = []LineItem{}
	}
	return c, nil
}

func (r *PostgresRepository) Save(c Cart) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return err
	}
	res, err := r.db.Exec(`UPDATE carts SET products = $2, total_price = $3, updated_at = $4 WHERE owner = $1`,
		c.Owner, items, c.TotalPrice, time.Now().UTC())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
