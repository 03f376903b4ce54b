// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Holds live game sessions for the HTTP layer.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - The map is guarded by an RWMutex; each session has its own mutex.
//   - Sessions are only reachable through Do, which holds the session's lock
//     for the whole callback, so observers run under the same lock.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/hiq/apps/go-server/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Do runs fn with exclusive access to the session with the given ID.
	// Returns ErrNotFound if there is no such session, else fn's error.
	Do(ctx context.Context, id string, fn func(s *game.Session) error) error

	// Delete drops a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Len reports how many sessions are held.
	Len() int
}

type entry struct {
	mu      sync.Mutex
	session *game.Session
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex      // guards entries map
	entries map[string]*entry // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{entries: make(map[string]*entry)}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	if s == nil || s.ID == "" {
		return errors.New("session without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID] = &entry{session: s}
	return nil
}

func (m *memory) Do(ctx context.Context, id string, fn func(s *game.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
