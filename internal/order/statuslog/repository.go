package statuslog

import "context"

// Repository is the port (interface) for persisting status log entries.
// The checkout pipeline and admin handlers depend on this abstraction,
// not on SQLite directly, so it can be swapped for in-memory (tests).
type Repository interface {
	// Save persists a new entry. Each call appends a row; the table is
	// an append-only audit log, not an upsert.
	Save(ctx context.Context, entry *Entry) error

	// History returns all entries for one order, oldest first.
	History(ctx context.Context, orderID string) ([]Entry, error)
}
