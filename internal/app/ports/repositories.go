package ports

import (
	"context"

	"moonlight/internal/domain/economy"
)

// PlayerRepository mirrors player records to durable storage. In-memory
// state stays authoritative at runtime; the store is loaded once at startup
// and written after every mutating operation, last write wins.
type PlayerRepository interface {
	LoadAll(ctx context.Context) ([]economy.PlayerRecord, error)
	Upsert(ctx context.Context, record economy.PlayerRecord) error
}

// CoinRepository mirrors coin balances, which have a lifecycle independent
// of player records.
type CoinRepository interface {
	LoadAll(ctx context.Context) (map[string]economy.Counter, error)
	Upsert(ctx context.Context, playerID string, coins economy.Counter) error
}
