package main

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/hertz/pkg/app/server"

	consoleannounce "moonlight/internal/adapter/announce/console"
	httpadapter "moonlight/internal/adapter/http"
	metricsinmem "moonlight/internal/adapter/metrics/inmemory"
	gormrepo "moonlight/internal/adapter/repo/gorm"
	memrepo "moonlight/internal/adapter/repo/memory"
	sqliterepo "moonlight/internal/adapter/repo/sqlite"
	"moonlight/internal/app/camp"
	"moonlight/internal/app/hunt"
	"moonlight/internal/app/ports"
	"moonlight/internal/app/shop"
	"moonlight/internal/app/state"
	"moonlight/internal/app/sweep"
	"moonlight/internal/app/wallet"
	"moonlight/internal/app/weather"
)

type config struct {
	Addr        string `env:"MOONLIGHT_ADDR" envDefault:":8080"`
	PostgresDSN string `env:"MOONLIGHT_DB_DSN"`
	SQLitePath  string `env:"MOONLIGHT_SQLITE_PATH"`
	AdminToken  string `env:"MOONLIGHT_ADMIN_TOKEN"`
	RandSeed    int64  `env:"MOONLIGHT_RAND_SEED"`
}

func main() {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}

	players, coins, err := buildRepos(cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}

	ctx := context.Background()
	st, err := loadState(ctx, players, coins)
	if err != nil {
		log.Fatalf("load state: %v", err)
	}

	announcer := consoleannounce.Announcer{}
	recorder := metricsinmem.NewRecorder()

	scheduler := weather.NewScheduler(announcer, recorder, rand.New(rand.NewSource(seed(cfg))))
	go scheduler.Run(ctx)

	sweeper := &sweep.Sweeper{State: st, Players: players, Announcer: announcer}
	go sweeper.Run(ctx)

	h := httpadapter.Handler{
		HuntUC: &hunt.UseCase{
			State:     st,
			Hazard:    scheduler,
			Players:   players,
			Coins:     coins,
			Announcer: announcer,
			Metrics:   recorder,
			Now:       time.Now,
			Rand:      rand.New(rand.NewSource(seed(cfg) + 1)),
		},
		CampUC:     &camp.UseCase{State: st, Hazard: scheduler, Players: players, Announcer: announcer, Now: time.Now},
		WalletUC:   &wallet.UseCase{State: st, Coins: coins},
		ShopUC:     &shop.UseCase{State: st, Players: players, Coins: coins},
		Weather:    scheduler,
		State:      st,
		AdminToken: cfg.AdminToken,
		KPI:        recorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(ctx context.Context) {
		flushState(ctx, st, players, coins)
	})

	log.Printf("moonlight server listening on %s (storage: %s)", cfg.Addr, storageName(cfg))
	s.Spin()
}

// buildRepos picks the persistence backend: postgres when a DSN is set,
// a sqlite file when a path is set, and in-process memory otherwise.
func buildRepos(cfg config) (ports.PlayerRepository, ports.CoinRepository, error) {
	if dsn := strings.TrimSpace(cfg.PostgresDSN); dsn != "" {
		db, err := gormrepo.OpenPostgres(dsn)
		if err != nil {
			return nil, nil, err
		}
		if err := gormrepo.Migrate(context.Background(), db); err != nil {
			return nil, nil, err
		}
		return gormrepo.NewPlayerRepo(db), gormrepo.NewCoinRepo(db), nil
	}
	if path := strings.TrimSpace(cfg.SQLitePath); path != "" {
		store, err := sqliterepo.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return store.Players(), store.Coins(), nil
	}
	store := memrepo.NewStore()
	return store.Players(), store.Coins(), nil
}

func loadState(ctx context.Context, players ports.PlayerRepository, coins ports.CoinRepository) (*state.State, error) {
	records, err := players.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := coins.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return state.NewFromSnapshot(records, balances), nil
}

// flushState writes every record back to the store on shutdown. Memory is
// authoritative while running; this is the final mirror.
func flushState(ctx context.Context, st *state.State, players ports.PlayerRepository, coins ports.CoinRepository) {
	for _, rec := range st.AllPlayers() {
		if err := players.Upsert(ctx, rec); err != nil {
			log.Printf("flush player %s: %v", rec.ID, err)
		}
	}
	for id, balance := range st.AllCoins() {
		if err := coins.Upsert(ctx, id, balance); err != nil {
			log.Printf("flush coins %s: %v", id, err)
		}
	}
}

func seed(cfg config) int64 {
	if cfg.RandSeed != 0 {
		return cfg.RandSeed
	}
	return time.Now().UnixNano()
}

func storageName(cfg config) string {
	switch {
	case strings.TrimSpace(cfg.PostgresDSN) != "":
		return "postgres"
	case strings.TrimSpace(cfg.SQLitePath) != "":
		return "sqlite"
	default:
		return "memory"
	}
}
