package storage

import (
	"errors"
	"sync"

	"github.com/mkadlec/quizconquest/internal/game"
)

// ErrGameNotFound is returned when a game id has no live state.
var ErrGameNotFound = errors.New("game not found")

// GameStore holds in-progress game states. Finished matches go to the
// archive table, live states never touch the database.
type GameStore struct {
	mu    sync.RWMutex
	games map[string]*game.State
}

func NewGameStore() *GameStore {
	return &GameStore{games: make(map[string]*game.State)}
}

func (gs *GameStore) Get(id string) (*game.State, error) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	s, ok := gs.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return s, nil
}

func (gs *GameStore) Put(s *game.State) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.games[s.ID] = s
}

func (gs *GameStore) Delete(id string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	delete(gs.games, id)
}

// List snapshots every live state. Used by the timeout scanner.
func (gs *GameStore) List() []*game.State {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	out := make([]*game.State, 0, len(gs.games))
	for _, s := range gs.games {
		out = append(out, s)
	}
	return out
}
