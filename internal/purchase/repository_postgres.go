package purchase

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(p Purchase) error {
	items, err := json.Marshal(p.Products)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(p.Products))
	for _, item := range p.Products {
		ids = append(ids, item.ProductID)
	}
	// product_ids duplicates the snapshot's ids into an indexable array so
	// reporting queries avoid unpacking the jsonb payload.
	_, err = r.db.Exec(`INSERT INTO purchases (uid, owner, products, product_ids, total_amount, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		p.UID, p.Owner, items, pq.Array(ids), p.TotalAmount, p.CreatedAt)
	return err
}

func (r *PostgresRepository) ListByOwner(owner string) ([]Purchase, error) {
	rows, err := r.db.Query(`SELECT uid, owner, products, total_amount, created_at
        FROM purchases WHERE owner = $1 ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *PostgresRepository) ListByProduct(productID string) ([]Purchase, error) {
	rows, err := r.db.Query(`SELECT uid, owner, products, total_amount, created_at
        FROM purchases WHERE $1 = ANY(product_ids) ORDER BY created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]Purchase, error) {
	defer rows.Close()
	out := make([]Purchase, 0)
	for rows.Next() {
		var p Purchase
		var raw []byte
		if err := rows.Scan(&p.UID, &p.Owner, &raw, &p.TotalAmount, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &p.Products); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
