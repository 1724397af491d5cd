// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Holds games played over HTTP between requests.
//
// Characteristics:
//   - Stores game.Game values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Save and Get copy the game, so callers never share a pointer with the map.
//   - Finished games are deleted by the server; stale ones are dropped by Expire.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/guess/internal/game"
)

// ErrNotFound is returned by Get for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID.
	// Returns ErrNotFound if the game is not found.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete forgets a game. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Expire deletes every game started before cutoff and reports how many went.
	Expire(ctx context.Context, cutoff time.Time) (int, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex         // guards games map
	games map[string]game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]game.Game)}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = *g
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return &g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) Expire(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, g := range m.games {
		if g.Started.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n, nil
}
