// Package sqlite provides a SQLite-backed implementation of
// settings.Repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ovenline/pizza-storefront/internal/settings"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Repository is the SQLite implementation of settings.Repository.
type Repository struct {
	db *sql.DB
}

var _ settings.Repository = (*Repository)(nil)

// New applies the schema and returns the repository.
func New(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: apply settings schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) All(ctx context.Context) ([]settings.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list settings: %w", err)
	}
	defer rows.Close()

	var out []settings.Setting
	for rows.Next() {
		var s settings.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("sqlite: scan setting: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list settings: %w", err)
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, key string) (settings.Setting, error) {
	var s settings.Setting
	err := r.db.QueryRowContext(ctx, `SELECT key, value FROM settings WHERE key = ?`, key).
		Scan(&s.Key, &s.Value)
	if err == sql.ErrNoRows {
		return settings.Setting{}, settings.ErrNotFound
	}
	if err != nil {
		return settings.Setting{}, fmt.Errorf("sqlite: get setting %q: %w", key, err)
	}
	return s, nil
}

func (r *Repository) Set(ctx context.Context, s settings.Setting) error {
	const q = `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, q, s.Key, s.Value,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("sqlite: set setting %q: %w", s.Key, err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("sqlite: delete setting %q: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return settings.ErrNotFound
	}
	return nil
}
