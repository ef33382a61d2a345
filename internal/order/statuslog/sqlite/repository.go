// Package sqlite provides a SQLite-backed implementation of
// statuslog.Repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ovenline/pizza-storefront/internal/order/statuslog"
)

// schema is the DDL executed once on startup.
// The table is append-only: each row is an immutable event in the
// order's lifecycle.
const schema = `
CREATE TABLE IF NOT EXISTS order_status_log (
    -- Surrogate primary key — auto-incremented by SQLite.
    id          INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Business identifier: the order ID.
    -- Not UNIQUE because multiple rows exist per order (one per transition).
    order_id    TEXT NOT NULL,

    -- Order status after this transition.
    status      TEXT NOT NULL,

    -- Optional free-text note shown on the tracking page.
    note        TEXT NOT NULL DEFAULT '',

    -- W3C trace_id (32 hex chars) from the active OTel span.
    trace_id    TEXT NOT NULL DEFAULT '',

    -- W3C span_id (16 hex chars) — pinpoints the exact request within the trace.
    span_id     TEXT NOT NULL DEFAULT '',

    -- Wall-clock timestamp of this event (RFC3339 stored as TEXT, SQLite idiom).
    updated_at  TEXT NOT NULL
);

-- Index for the most common query: "give me the history of order X in order".
CREATE INDEX IF NOT EXISTS idx_order_status_log_order_id ON order_status_log(order_id, updated_at);

-- Index for the observability query: "find the order for trace Y".
CREATE INDEX IF NOT EXISTS idx_order_status_log_trace_id ON order_status_log(trace_id);
`

// Repository is the SQLite implementation of statuslog.Repository.
type Repository struct {
	db *sql.DB
}

var _ statuslog.Repository = (*Repository)(nil)

// New applies the schema and returns the repository.
func New(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: apply status log schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Save inserts a new status log entry. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *statuslog.Entry) error {
	const q = `
		INSERT INTO order_status_log
			(order_id, status, note, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.OrderID,
		entry.Status,
		entry.Note,
		entry.TraceID,
		entry.SpanID,
		entry.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save status log for %q: %w", entry.OrderID, err)
	}
	return nil
}

// History returns all entries for one order, oldest first.
func (r *Repository) History(ctx context.Context, orderID string) ([]statuslog.Entry, error) {
	const q = `
		SELECT order_id, status, note, trace_id, span_id, updated_at
		FROM   order_status_log
		WHERE  order_id = ?
		ORDER  BY updated_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: status history for %q: %w", orderID, err)
	}
	defer rows.Close()

	var entries []statuslog.Entry
	for rows.Next() {
		var e statuslog.Entry
		var updatedAt string
		if err := rows.Scan(&e.OrderID, &e.Status, &e.Note, &e.TraceID, &e.SpanID, &updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan status history for %q: %w", orderID, err)
		}
		if e.UpdatedAt, err = parseRFC3339(updatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: status history for %q: %w", orderID, err)
	}
	return entries, nil
}
