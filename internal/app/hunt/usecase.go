package hunt

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"moonlight/internal/app/ports"
	"moonlight/internal/app/state"
	"moonlight/internal/app/weather"
	"moonlight/internal/domain/economy"
	"moonlight/internal/domain/hazard"
)

var (
	ErrStormWarned    = errors.New("storm incoming, seek camp")
	ErrCamping        = errors.New("cannot hunt while camping")
	ErrOnCooldown     = errors.New("hunt on cooldown")
	ErrNoAmmo         = errors.New("out of ammo")
	ErrGunBroken      = errors.New("gun is broken")
	ErrInvalidRequest = errors.New("invalid hunt request")
	ErrNoProfile      = errors.New("no hunt profile for current weather")
)

// HazardSource exposes the current hazard state to the hunt path.
type HazardSource interface {
	Snapshot() weather.Snapshot
}

// UseCase resolves hunts against the current hazard and applies the
// outcome to shared state. Hazard state is read-only here; the ledger,
// camp, and warning registries are mutated through State's lock.
type UseCase struct {
	State     *state.State
	Hazard    HazardSource
	Players   ports.PlayerRepository
	Coins     ports.CoinRepository
	Announcer ports.Announcer
	Metrics   ports.HuntMetrics
	Now       func() time.Time
	Rand      *rand.Rand
	// Schedule runs fn after d; the delayed storm resolution goes through
	// it so tests can run the resolution inline.
	Schedule func(d time.Duration, fn func())

	randMu sync.Mutex
}

func (u *UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.PlayerID) == "" {
		return Response{}, ErrInvalidRequest
	}

	snap := u.Hazard.Snapshot()
	effective := snap.EffectiveKind()
	profile, ok := hazard.ProfileFor(effective, snap.Chaos())
	if !ok {
		return Response{}, ErrNoProfile
	}

	rec, created := u.State.EnsurePlayer(req.PlayerID)
	if created {
		u.persist(ctx, rec, true)
	}

	if err := u.checkPreconditions(req, rec); err != nil {
		return Response{}, err
	}

	result := u.roll(profile, snap.BlizzardActive)

	// One critical section for the whole ledger mutation, so a concurrent
	// defeat sweep or storm resolution cannot be clobbered by a stale copy.
	rec, _ = u.State.MutatePlayer(req.PlayerID, func(rec *economy.PlayerRecord) error {
		if result.HealthDamage > 0 {
			rec.Damage(result.HealthDamage)
		}
		// Every resolution wears the gear except exhaustion (the player
		// never set out) and storm events (the storm branch owns the exit).
		if result.Outcome != OutcomeExhausted && !result.StormEvent {
			rec.GunDurability = rec.GunDurability.Sub(2)
			rec.Ammo = rec.Ammo.Sub(3)
		}
		return nil
	})

	resp := Response{
		Outcome:       result.Outcome,
		Weather:       effective,
		Chaos:         snap.Chaos(),
		Mobs:          result.Loot.Mobs,
		Reward:        result.Loot.Reward,
		Health:        rec.Health,
		Ammo:          rec.Ammo,
		GunDurability: rec.GunDurability,
	}

	if result.Outcome == OutcomeLoot && result.Loot.Reward > 0 {
		balance, applied := u.State.AddCoins(req.PlayerID, result.Loot.Reward)
		resp.Balance = balance
		if applied {
			u.persistCoins(ctx, req.PlayerID, balance)
		}
		u.announce(ctx, ports.Message{
			Title:    "Hunt pays off",
			Body:     fmt.Sprintf("Bagged %d mobs for %d coins. Balance: %s.", len(result.Loot.Mobs), result.Loot.Reward, balance),
			Tone:     ports.ToneReward,
			PlayerID: req.PlayerID,
		})
	} else {
		resp.Balance = u.State.Coins(req.PlayerID)
	}

	if result.StormEvent {
		resp.StormWarning = true
		u.State.SetStormWarning(req.PlayerID, u.Now())
		u.announce(ctx, ports.Message{
			Title:    "Storm warning",
			Body:     fmt.Sprintf("A %s surge is about to hit. Get to camp!", effective.Label()),
			Tone:     ports.ToneDanger,
			PlayerID: req.PlayerID,
		})
		u.scheduleStormResolution(req.PlayerID, profile)
	}

	u.persist(ctx, rec, false)
	if u.Metrics != nil {
		u.Metrics.RecordHunt(string(result.Outcome))
	}
	return resp, nil
}

// checkPreconditions walks the rejection ladder in its fixed order. Every
// rejection leaves state untouched, except the cooldown stamp taken on
// admission.
func (u *UseCase) checkPreconditions(req Request, rec economy.PlayerRecord) error {
	if u.State.HasStormWarning(req.PlayerID) {
		return u.reject("storm_warned", ErrStormWarned)
	}
	if u.State.InCamp(req.PlayerID) {
		return u.reject("camping", ErrCamping)
	}
	remaining, ok := u.State.TryHunt(req.PlayerID, u.Now(), hazard.HuntCooldown, req.Admin)
	if !ok {
		return u.reject("cooldown", fmt.Errorf("%w: try again in %ds", ErrOnCooldown, int(remaining.Seconds())+1))
	}
	if rec.Ammo <= 0 {
		return u.reject("no_ammo", ErrNoAmmo)
	}
	if rec.GunDurability <= 0 {
		return u.reject("gun_broken", ErrGunBroken)
	}
	return nil
}

func (u *UseCase) reject(reason string, err error) error {
	if u.Metrics != nil {
		u.Metrics.RecordRejection(reason)
	}
	return err
}

// scheduleStormResolution arms the delayed storm-damage task. It runs on
// its own context: the player's request is long gone by the time it fires.
func (u *UseCase) scheduleStormResolution(playerID string, profile hazard.Profile) {
	schedule := u.Schedule
	if schedule == nil {
		schedule = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	damage := profile.StormDamage
	degradation := profile.CampDegradation
	kind := profile.Kind
	schedule(profile.WarningDelay, func() {
		ctx := context.Background()
		outcome, rec := u.State.ResolveStormWarning(playerID, damage, degradation)
		switch outcome {
		case state.StormNoWarning:
			hlog.Warnf("storm resolution for %s found no pending warning", playerID)
			return
		case state.StormHit:
			u.announce(ctx, ports.Message{
				Title:    fmt.Sprintf("%s hits", kind.Label()),
				Body:     fmt.Sprintf("Caught in the open for %d damage. Health: %d.", damage, rec.Health),
				Tone:     ports.ToneDanger,
				PlayerID: playerID,
			})
		case state.StormCampHeld:
			u.announce(ctx, ports.Message{
				Title:    "Camp holds",
				Body:     fmt.Sprintf("The camp takes the hit. Durability: %s.", rec.CampDurability),
				Tone:     ports.ToneWarning,
				PlayerID: playerID,
			})
		case state.StormCampDestroyed:
			u.announce(ctx, ports.Message{
				Title:    "Camp destroyed",
				Body:     fmt.Sprintf("The camp gives way for %d damage. Health: %d.", degradation, rec.Health),
				Tone:     ports.ToneDanger,
				PlayerID: playerID,
			})
		}
		u.persist(ctx, rec, false)
	})
}

// roll serializes access to the shared RNG; hunts run concurrently across
// players.
func (u *UseCase) roll(profile hazard.Profile, blizzardActive bool) rollResult {
	u.randMu.Lock()
	defer u.randMu.Unlock()
	return roll(u.Rand, profile, blizzardActive)
}

// persist mirrors the record to the store. In-memory state stays
// authoritative, so failures are logged and swallowed.
func (u *UseCase) persist(ctx context.Context, rec economy.PlayerRecord, withCoins bool) {
	if u.Players != nil {
		if err := u.Players.Upsert(ctx, rec); err != nil {
			hlog.Errorf("persist player %s: %v", rec.ID, err)
		}
	}
	if withCoins {
		u.persistCoins(ctx, rec.ID, u.State.Coins(rec.ID))
	}
}

func (u *UseCase) persistCoins(ctx context.Context, playerID string, balance economy.Counter) {
	if u.Coins == nil {
		return
	}
	if err := u.Coins.Upsert(ctx, playerID, balance); err != nil {
		hlog.Errorf("persist coins %s: %v", playerID, err)
	}
}

func (u *UseCase) announce(ctx context.Context, msg ports.Message) {
	if u.Announcer == nil {
		return
	}
	if err := u.Announcer.Announce(ctx, msg); err != nil {
		hlog.Warnf("hunt announce failed: %v", err)
	}
}
