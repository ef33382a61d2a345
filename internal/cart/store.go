package cart

import "context"

// Slot names for the two persisted item lists. Each session owns one
// snapshot per slot.
const (
	SlotItems         = "items"
	SlotSavedForLater = "saved_for_later"
)

// Store is the port (interface) for persisting cart snapshots.
// The engine depends on this abstraction, not on SQLite directly,
// so the implementation can be swapped for in-memory (tests), Redis, etc.
type Store interface {
	// LoadSlot returns the snapshot for a session/slot pair, or nil when
	// no snapshot has been written yet.
	LoadSlot(ctx context.Context, sessionID, slot string) ([]Item, error)

	// SaveSlot replaces the snapshot for a session/slot pair.
	SaveSlot(ctx context.Context, sessionID, slot string, items []Item) error
}
