package cart

import (
	"context"
	"sync"
)

// Manager owns one Engine per session and serializes access to it.
// Engines are hydrated from the store on first use and kept in memory
// for the lifetime of the process; the durable snapshots live in the
// store.
type Manager struct {
	store Store

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu     sync.Mutex
	engine *Engine
}

// NewManager returns a manager backed by the given store. The store may
// be nil, in which case carts live only in memory.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sessions: make(map[string]*session),
	}
}

// Do runs fn with the session's engine while holding that session's
// lock. The engine itself is not safe for concurrent use; all access
// must go through Do.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(*Engine) error) error {
	s, err := m.session(ctx, sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.engine)
}

// session returns the existing session or hydrates a new one. Hydration
// happens under the map lock so no caller can observe an un-hydrated
// engine.
func (m *Manager) session(ctx context.Context, sessionID string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		return s, nil
	}

	engine := NewEngine(sessionID, m.store)
	if err := engine.Hydrate(ctx); err != nil {
		return nil, err
	}
	s := &session{engine: engine}
	m.sessions[sessionID] = s
	return s, nil
}
