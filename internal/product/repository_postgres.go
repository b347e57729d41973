package product

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `uid, name, description, price, quantity, created_at, updated_at, deleted_at`

func (r *PostgresRepository) List(page, limit int) ([]Product, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
        WHERE deleted_at IS NULL
        ORDER BY created_at
        OFFSET $1 LIMIT $2`, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) GetByUID(uid string) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE uid = $1`, uid)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	_, err := r.db.Exec(`INSERT INTO products (uid, name, description, price, quantity, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.UID, p.Name, p.Description, p.Price, p.Quantity, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(uid string, upd Update) (Product, error) {
	// COALESCE keeps unset fields untouched; the deleted_at guard makes a
	// soft-deleted product immutable.
	row := r.db.QueryRow(`UPDATE products SET
            name = COALESCE($2, name),
            description = COALESCE($3, description),
            price = COALESCE($4, price),
            quantity = COALESCE($5, quantity),
            updated_at = $6
        WHERE uid = $1 AND deleted_at IS NULL
        RETURNING `+productColumns,
		uid, upd.Name, upd.Description, upd.Price, upd.Quantity, time.Now().UTC())
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, r.classifyMissing(uid)
	}
	return p, err
}

func (r *PostgresRepository) SoftDelete(uid string, at time.Time) error {
	res, err := r.db.Exec(`UPDATE products SET deleted_at = $2, updated_at = $2
        WHERE uid = $1 AND deleted_at IS NULL`, uid, at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.classifyMissing(uid)
	}
	return nil
}

// classifyMissing tells a genuinely absent product apart from a soft-deleted
// one after a guarded update matched no rows.
func (r *PostgresRepository) classifyMissing(uid string) error {
	var deleted sql.NullTime
	err := r.db.QueryRow(`SELECT deleted_at FROM products WHERE uid = $1`, uid).Scan(&deleted)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if deleted.Valid {
		return ErrDeleted
	}
	return ErrNotFound
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var deleted sql.NullTime
	err := row.Scan(&p.UID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt, &deleted)
	if err != nil {
		return Product{}, err
	}
	if deleted.Valid {
		t := deleted.Time
		p.DeletedAt = &t
	}
	return p, nil
}
