package user

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

const userColumns = `id, name, email, password, created_at, updated_at, deleted_at`

func (r *PostgresRepository) Create(u User) (User, error) {
	res, err := r.db.Exec(`INSERT INTO users (id, name, email, password, created_at, updated_at)
        SELECT $1, $2, $3, $4, $5, $5
        WHERE NOT EXISTS (
            SELECT 1 FROM users WHERE lower(email) = lower($3) AND deleted_at IS NULL
        )`,
		u.ID, u.Name, u.Email, u.Password, u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if n == 0 {
		return User{}, ErrEmailExists
	}
	return u, nil
}

func (r *PostgresRepository) GetByID(id string) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users
        WHERE lower(email) = lower($1) AND deleted_at IS NULL`, email)
	return scanUser(row)
}

func (r *PostgresRepository) SoftDelete(id string, at time.Time) error {
	res, err := r.db.Exec(`UPDATE users SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, at)
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

func scanUser(row *sql.Row) (User, error) {
	var u User
	var deleted sql.NullTime
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt, &deleted)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	if deleted.Valid {
		t := deleted.Time
		u.DeletedAt = &t
	}
	return u, nil
}
