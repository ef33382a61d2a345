// Package cartstore provides cart.Store implementations. The in-memory
// store lives here; the durable SQLite store is in the sqlite
// subpackage.
package cartstore

import (
	"context"
	"sync"

	"github.com/ovenline/pizza-storefront/internal/cart"
)

// Ensure Memory implements the port at compile time.
var _ cart.Store = (*Memory)(nil)

// Memory is an in-memory cart.Store for tests and local development.
// Snapshots do not survive a restart.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]cart.Item
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]cart.Item)}
}

func (m *Memory) LoadSlot(ctx context.Context, sessionID, slot string) ([]cart.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items, ok := m.slots[sessionID+"/"+slot]
	if !ok {
		return nil, nil
	}
	return append([]cart.Item(nil), items...), nil
}

func (m *Memory) SaveSlot(ctx context.Context, sessionID, slot string, items []cart.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[sessionID+"/"+slot] = append([]cart.Item(nil), items...)
	return nil
}
