package memory

import (
	"context"
	"sync"

	"moonlight/internal/domain/economy"
)

// Store is the no-database fallback: mutating operations land here and are
// lost on restart. Mirrors the shape of the SQL adapters so main can swap
// them freely.
type Store struct {
	mu      sync.RWMutex
	players map[string]economy.PlayerRecord
	coins   map[string]economy.Counter
}

func NewStore() *Store {
	return &Store{
		players: make(map[string]economy.PlayerRecord),
		coins:   make(map[string]economy.Counter),
	}
}

func (s *Store) Players() PlayerRepo { return PlayerRepo{store: s} }
func (s *Store) Coins() CoinRepo { return CoinRepo{store: s} }

type PlayerRepo struct {
	store *Store
}

func (r PlayerRepo) LoadAll(context.Context) ([]economy.PlayerRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]economy.PlayerRecord, 0, len(r.store.players))
	for _, rec := range r.store.players {
		out = append(out, rec)
	}
	return out, nil
}

func (r PlayerRepo) Upsert(_ context.Context, record economy.PlayerRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.players[record.ID] = record
	return nil
}

type CoinRepo struct {
	store *Store
}

func (r CoinRepo) LoadAll(context.Context) (map[string]economy.Counter, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make(map[string]economy.Counter, len(r.store.coins))
	for playerID, coins := range r.store.coins {
		out[playerID] = coins
	}
	return out, nil
}

func (r CoinRepo) Upsert(_ context.Context, playerID string, coins economy.Counter) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.coins[playerID] = coins
	return nil
}
