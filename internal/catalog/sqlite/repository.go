// Package sqlite provides a SQLite-backed implementation of
// catalog.Repository. Per-size prices are stored as a JSON column:
// sizes are read and written as a unit and never queried individually.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ovenline/pizza-storefront/internal/catalog"
)

const schema = `
CREATE TABLE IF NOT EXISTS pizzas (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category    TEXT NOT NULL DEFAULT '',
    image       TEXT NOT NULL DEFAULT '',

    -- JSON array of {name, diameter, price}.
    sizes       TEXT NOT NULL DEFAULT '[]',

    available   INTEGER NOT NULL DEFAULT 1,

    -- RFC3339 TEXT timestamps (SQLite idiom).
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pizzas_category ON pizzas(category);
`

// Repository is the SQLite implementation of catalog.Repository.
type Repository struct {
	db *sql.DB
}

var _ catalog.Repository = (*Repository)(nil)

// New applies the schema and returns the repository.
func New(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: apply pizzas schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) List(ctx context.Context) ([]catalog.Pizza, error) {
	const q = `
		SELECT id, name, description, category, image, sizes, available, created_at, updated_at
		FROM   pizzas
		ORDER  BY name`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list pizzas: %w", err)
	}
	defer rows.Close()

	var pizzas []catalog.Pizza
	for rows.Next() {
		p, err := scanPizza(rows)
		if err != nil {
			return nil, err
		}
		pizzas = append(pizzas, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list pizzas: %w", err)
	}
	return pizzas, nil
}

func (r *Repository) Get(ctx context.Context, id string) (catalog.Pizza, error) {
	const q = `
		SELECT id, name, description, category, image, sizes, available, created_at, updated_at
		FROM   pizzas
		WHERE  id = ?`

	row := r.db.QueryRowContext(ctx, q, id)
	p, err := scanPizza(row)
	if err == sql.ErrNoRows {
		return catalog.Pizza{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Pizza{}, fmt.Errorf("sqlite: get pizza %q: %w", id, err)
	}
	return p, nil
}

func (r *Repository) Create(ctx context.Context, p catalog.Pizza) error {
	sizes, err := json.Marshal(p.Sizes)
	if err != nil {
		return fmt.Errorf("sqlite: encode sizes for %q: %w", p.ID, err)
	}

	const q = `
		INSERT INTO pizzas (id, name, description, category, image, sizes, available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, q,
		p.ID, p.Name, p.Description, p.Category, p.Image, string(sizes),
		boolToInt(p.Available), formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("sqlite: create pizza %q: %w", p.ID, err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, p catalog.Pizza) error {
	sizes, err := json.Marshal(p.Sizes)
	if err != nil {
		return fmt.Errorf("sqlite: encode sizes for %q: %w", p.ID, err)
	}

	const q = `
		UPDATE pizzas
		SET    name = ?, description = ?, category = ?, image = ?, sizes = ?, available = ?, updated_at = ?
		WHERE  id = ?`

	res, err := r.db.ExecContext(ctx, q,
		p.Name, p.Description, p.Category, p.Image, string(sizes),
		boolToInt(p.Available), formatTime(p.UpdatedAt), p.ID)
	if err != nil {
		return fmt.Errorf("sqlite: update pizza %q: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pizzas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete pizza %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPizza(s scanner) (catalog.Pizza, error) {
	var p catalog.Pizza
	var sizes string
	var available int
	var createdAt, updatedAt string

	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Image,
		&sizes, &available, &createdAt, &updatedAt)
	if err != nil {
		return catalog.Pizza{}, err
	}

	if err := json.Unmarshal([]byte(sizes), &p.Sizes); err != nil {
		return catalog.Pizza{}, fmt.Errorf("sqlite: decode sizes for %q: %w", p.ID, err)
	}
	p.Available = available != 0
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return catalog.Pizza{}, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return catalog.Pizza{}, err
	}
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
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
