package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
)

func TestConfigDefaults(t *testing.T) {
	t.Setenv("MOONLIGHT_ADDR", "")
	t.Setenv("MOONLIGHT_DB_DSN", "")
	t.Setenv("MOONLIGHT_SQLITE_PATH", "")

	cfg, err := env.ParseAs[config]()
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %q, want :8080", cfg.Addr)
	}
	if storageName(cfg) != "memory" {
		t.Fatalf("storage = %q, want memory", storageName(cfg))
	}
}

func TestConfigReadsEnv(t *testing.T) {
	t.Setenv("MOONLIGHT_ADDR", ":9999")
	t.Setenv("MOONLIGHT_SQLITE_PATH", "/tmp/moonlight.db")
	t.Setenv("MOONLIGHT_ADMIN_TOKEN", "hunter2")
	t.Setenv("MOONLIGHT_RAND_SEED", "42")

	cfg, err := env.ParseAs[config]()
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.AdminToken != "hunter2" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if seed(cfg) != 42 {
		t.Fatalf("seed = %d, want 42", seed(cfg))
	}
	if storageName(cfg) != "sqlite" {
		t.Fatalf("storage = %q, want sqlite", storageName(cfg))
	}
}

func TestBuildReposFallsBackToMemory(t *testing.T) {
	players, coins, err := buildRepos(config{})
	if err != nil {
		t.Fatalf("build repos: %v", err)
	}

	st, err := loadState(context.Background(), players, coins)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if got := len(st.AllPlayers()); got != 0 {
		t.Fatalf("players = %d, want 0", got)
	}
}

func TestFlushStateMirrorsEverything(t *testing.T) {
	players, coins, err := buildRepos(config{})
	if err != nil {
		t.Fatalf("build repos: %v", err)
	}
	st, err := loadState(context.Background(), players, coins)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	st.EnsurePlayer("p1")
	st.SetCoins("p1", 77)

	flushState(context.Background(), st, players, coins)

	reloaded, err := loadState(context.Background(), players, coins)
	if err != nil {
		t.Fatalf("reload state: %v", err)
	}
	if got := len(reloaded.AllPlayers()); got != 1 {
		t.Fatalf("players after flush = %d, want 1", got)
	}
	if got := reloaded.Coins("p1"); got != 77 {
		t.Fatalf("coins after flush = %v, want 77", got)
	}
}

func TestBuildReposOpensSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moonlight.db")
	players, coins, err := buildRepos(config{SQLitePath: path})
	if err != nil {
		t.Fatalf("build repos: %v", err)
	}

	st, err := loadState(context.Background(), players, coins)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	st.EnsurePlayer("p1")
}
