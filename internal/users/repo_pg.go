package users

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new user.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, name, email, password_hash, photo_url, role, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var photoURL sql.NullString
	if user.PhotoURL != "" {
		photoURL = sql.NullString{String: user.PhotoURL, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		photoURL,
		user.Role,
		user.CreatedAt,
	)
	return err
}

// GetByID fetches a user by id.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, name, email, password_hash, photo_url, role, created_at
FROM users
WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

// GetByEmail fetches a user by email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, name, email, password_hash, photo_url, role, created_at
FROM users
WHERE email = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	var photoURL sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&photoURL,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if photoURL.Valid {
		user.PhotoURL = photoURL.String
	}
	return user, nil
}

var _ Repo = (*PGRepo)(nil)
