package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"moonlight/internal/domain/economy"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
  player_id       TEXT PRIMARY KEY,
  health          INTEGER NOT NULL,
  gun_durability  INTEGER NOT NULL,
  ammo            INTEGER NOT NULL,
  camp_durability INTEGER NOT NULL,
  healing_potions INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS coin_balances (
  player_id TEXT PRIMARY KEY,
  coins     INTEGER NOT NULL
);`

// Store is a single-file fallback for deployments without Postgres. It
// implements both ports.PlayerRepository and ports.CoinRepository.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc's driver is not safe for concurrent writers on one
	// connection pool beyond serialization; a single connection keeps the
	// journal happy.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Players returns the player-record view of the store.
func (s *Store) Players() PlayerRepo { return PlayerRepo{store: s} }

// Coins returns the coin-balance view of the store.
func (s *Store) Coins() CoinRepo { return CoinRepo{store: s} }

type PlayerRepo struct {
	store *Store
}

func (r PlayerRepo) LoadAll(ctx context.Context) ([]economy.PlayerRecord, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT player_id, health, gun_durability, ammo, camp_durability, healing_potions FROM players`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []economy.PlayerRecord
	for rows.Next() {
		var rec economy.PlayerRecord
		var gun, ammo, camp, potions int64
		if err := rows.Scan(&rec.ID, &rec.Health, &gun, &ammo, &camp, &potions); err != nil {
			return nil, err
		}
		rec.GunDurability = economy.ClampValue(gun)
		rec.Ammo = economy.ClampValue(ammo)
		rec.CampDurability = economy.ClampValue(camp)
		rec.HealingPotions = economy.ClampValue(potions)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r PlayerRepo) Upsert(ctx context.Context, record economy.PlayerRecord) error {
	_, err := r.store.db.ExecContext(ctx, `
INSERT INTO players (player_id, health, gun_durability, ammo, camp_durability, healing_potions)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(player_id) DO UPDATE SET
  health = excluded.health,
  gun_durability = excluded.gun_durability,
  ammo = excluded.ammo,
  camp_durability = excluded.camp_durability,
  healing_potions = excluded.healing_potions`,
		record.ID, record.Health,
		record.GunDurability.Int64(), record.Ammo.Int64(),
		record.CampDurability.Int64(), record.HealingPotions.Int64())
	return err
}

type CoinRepo struct {
	store *Store
}

func (r CoinRepo) LoadAll(ctx context.Context) (map[string]economy.Counter, error) {
	rows, err := r.store.db.QueryContext(ctx, `SELECT player_id, coins FROM coin_balances`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]economy.Counter)
	for rows.Next() {
		var (
			playerID string
			coins    int64
		)
		if err := rows.Scan(&playerID, &coins); err != nil {
			return nil, err
		}
		out[playerID] = economy.ClampValue(coins)
	}
	return out, rows.Err()
}

func (r CoinRepo) Upsert(ctx context.Context, playerID string, coins economy.Counter) error {
	_, err := r.store.db.ExecContext(ctx, `
INSERT INTO coin_balances (player_id, coins) VALUES (?, ?)
ON CONFLICT(player_id) DO UPDATE SET coins = excluded.coins`,
		playerID, coins.Int64())
	return err
}
