// Package sqlite provides a SQLite-backed implementation of
// user.Repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ovenline/pizza-storefront/internal/user"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL UNIQUE,
    phone      TEXT NOT NULL DEFAULT '',
    address    TEXT NOT NULL DEFAULT '',
    role       TEXT NOT NULL DEFAULT 'CUSTOMER',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Repository is the SQLite implementation of user.Repository.
type Repository struct {
	db *sql.DB
}

var _ user.Repository = (*Repository)(nil)

// New applies the schema and returns the repository.
func New(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: apply users schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) List(ctx context.Context) ([]user.User, error) {
	const q = `
		SELECT id, name, email, phone, address, role, created_at, updated_at
		FROM   users
		ORDER  BY name`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list users: %w", err)
	}
	return users, nil
}

func (r *Repository) Get(ctx context.Context, id string) (user.User, error) {
	const q = `
		SELECT id, name, email, phone, address, role, created_at, updated_at
		FROM   users
		WHERE  id = ?`

	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("sqlite: get user %q: %w", id, err)
	}
	return u, nil
}

func (r *Repository) Create(ctx context.Context, u user.User) error {
	const q = `
		INSERT INTO users (id, name, email, phone, address, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		u.ID, u.Name, u.Email, u.Phone, u.Address, string(u.Role),
		formatTime(u.CreatedAt), formatTime(u.UpdatedAt))
	if err != nil {
		return fmt.Errorf("sqlite: create user %q: %w", u.ID, err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, u user.User) error {
	const q = `
		UPDATE users
		SET    name = ?, email = ?, phone = ?, address = ?, role = ?, updated_at = ?
		WHERE  id = ?`

	res, err := r.db.ExecContext(ctx, q,
		u.Name, u.Email, u.Phone, u.Address, string(u.Role), formatTime(u.UpdatedAt), u.ID)
	if err != nil {
		return fmt.Errorf("sqlite: update user %q: %w", u.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete user %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return user.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (user.User, error) {
	var u user.User
	var role, createdAt, updatedAt string

	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &role, &createdAt, &updatedAt)
	if err != nil {
		return user.User{}, err
	}
	u.Role = user.Role(role)
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return user.User{}, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", s, err)
	}
	return t, nil
}
