package gormrepo

import (
	"context"
	"os"
	"testing"

	"moonlight/internal/domain/economy"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("MOONLIGHT_DB_DSN")
	if dsn == "" {
		t.Skip("MOONLIGHT_DB_DSN is required for integration test")
	}
	return dsn
}

func TestPlayerRepo_RoundTrip(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	playerID := "it-player-roundtrip"
	_ = db.Exec("DELETE FROM players WHERE player_id = ?", playerID).Error

	repo := NewPlayerRepo(db)
	seed := economy.PlayerRecord{
		ID:             playerID,
		Health:         63,
		GunDurability:  12,
		Ammo:           economy.PosInf,
		CampDurability: 0,
		HealingPotions: 4,
	}
	if err := repo.Upsert(ctx, seed); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	seed.Health = 100
	if err := repo.Upsert(ctx, seed); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	all, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	var got *economy.PlayerRecord
	for i := range all {
		if all[i].ID == playerID {
			got = &all[i]
			break
		}
	}
	if got == nil {
		t.Fatalf("player %s missing after upsert", playerID)
	}
	if got.Health != 100 || got.Ammo != economy.PosInf || got.HealingPotions != 4 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestCoinRepo_RoundTrip(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	playerID := "it-coin-roundtrip"
	_ = db.Exec("DELETE FROM coin_balances WHERE player_id = ?", playerID).Error

	repo := NewCoinRepo(db)
	if err := repo.Upsert(ctx, playerID, 250); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert(ctx, playerID, 500); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	all, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if got := all[playerID]; got != 500 {
		t.Fatalf("coins = %v, want 500", got)
	}
}
