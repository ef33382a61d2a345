// Package sqlite provides a SQLite-backed implementation of cart.Store.
//
// Each session/slot pair maps to one row holding the serialized item
// list. Writes are upserts: the cart engine persists full snapshots
// after every mutation, so only the latest snapshot matters.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ovenline/pizza-storefront/internal/cart"
)

// schema is the DDL executed once on startup.
const schema = `
CREATE TABLE IF NOT EXISTS cart_slots (
    -- Session the snapshot belongs to (one cart per browsing session).
    session_id  TEXT NOT NULL,

    -- Slot name: "items" or "saved_for_later".
    slot        TEXT NOT NULL,

    -- JSON array of cart items.
    payload     TEXT NOT NULL,

    -- Wall-clock timestamp of the last write (RFC3339 TEXT, SQLite idiom).
    updated_at  TEXT NOT NULL,

    PRIMARY KEY (session_id, slot)
);
`

// Store is the SQLite implementation of cart.Store.
type Store struct {
	db *sql.DB
}

var _ cart.Store = (*Store)(nil)

// New applies the schema and returns the store. The *sql.DB is shared
// with the other repositories and closed by the caller.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: apply cart schema: %w", err)
	}
	return &Store{db: db}, nil
}

// LoadSlot returns the snapshot for a session/slot pair, or nil when no
// snapshot exists yet.
func (s *Store) LoadSlot(ctx context.Context, sessionID, slot string) ([]cart.Item, error) {
	const q = `SELECT payload FROM cart_slots WHERE session_id = ? AND slot = ?`

	var payload string
	err := s.db.QueryRowContext(ctx, q, sessionID, slot).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load cart slot %s/%s: %w", sessionID, slot, err)
	}

	var items []cart.Item
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("sqlite: decode cart slot %s/%s: %w", sessionID, slot, err)
	}
	return items, nil
}

// SaveSlot replaces the snapshot for a session/slot pair.
func (s *Store) SaveSlot(ctx context.Context, sessionID, slot string, items []cart.Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("sqlite: encode cart slot %s/%s: %w", sessionID, slot, err)
	}

	const q = `
		INSERT INTO cart_slots (session_id, slot, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id, slot) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`

	_, err = s.db.ExecContext(ctx, q, sessionID, slot, string(payload),
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("sqlite: save cart slot %s/%s: %w", sessionID, slot, err)
	}
	return nil
}
