package sweep

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"moonlight/internal/app/ports"
	"moonlight/internal/app/state"
	"moonlight/internal/domain/hazard"
)

const announceRetries = 5

// Sweeper periodically clears defeated players: halved resources, health
// reset, persist, announce. Announcement rate limits are retried with
// backoff so one throttled message never aborts the sweep.
type Sweeper struct {
	State     *state.State
	Players   ports.PlayerRepository
	Announcer ports.Announcer
	Interval  time.Duration
	// Sleep is the backoff wait, injectable for tests.
	Sleep func(time.Duration)
}

func (s *Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = hazard.DefeatSweepTick
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single pass over the ledger.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	for _, result := range s.State.SweepDefeated() {
		if s.Players != nil {
			if err := s.Players.Upsert(ctx, result.Record); err != nil {
				hlog.Errorf("persist defeated player %s: %v", result.Record.ID, err)
			}
		}
		s.announceWithRetry(ctx, ports.Message{
			Title:    "Defeated",
			Body:     lossBody(result),
			Tone:     ports.ToneDanger,
			PlayerID: result.Record.ID,
		})
	}
}

func (s *Sweeper) announceWithRetry(ctx context.Context, msg ports.Message) {
	if s.Announcer == nil {
		return
	}
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for attempt := 0; ; attempt++ {
		err := s.Announcer.Announce(ctx, msg)
		if err == nil {
			return
		}
		if !errors.Is(err, ports.ErrRateLimited) || attempt >= announceRetries {
			hlog.Warnf("defeat announce failed: %v", err)
			return
		}
		sleep(time.Duration(attempt+1) * time.Second)
	}
}

func lossBody(result state.DefeatResult) string {
	parts := make([]string, 0, 4)
	for _, key := range []string{"gun_durability", "ammo", "camp_durability", "healing_potions"} {
		if loss, ok := result.Losses[key]; ok && loss != 0 {
			parts = append(parts, fmt.Sprintf("%s -%s", strings.ReplaceAll(key, "_", " "), loss))
		}
	}
	if len(parts) == 0 {
		return "Health restored. Nothing left to lose."
	}
	return "Health restored. Losses: " + strings.Join(parts, ", ") + "."
}
