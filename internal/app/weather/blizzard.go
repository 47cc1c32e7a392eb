package weather

import (
	"context"
	"time"

	"moonlight/internal/app/ports"
	"moonlight/internal/domain/hazard"
)

// blizzardBounds holds the phase-length bounds for one blizzard variant.
type blizzardBounds struct {
	activeMin   time.Duration
	activeMax   time.Duration
	forceWindow time.Duration
	calmMin     time.Duration
}

var (
	regularBlizzardBounds = blizzardBounds{
		activeMin:   hazard.BlizzardActiveMin,
		activeMax:   hazard.BlizzardActiveMax,
		forceWindow: hazard.BlizzardForceWindow,
		calmMin:     hazard.BlizzardCalmMin,
	}
	chaosBlizzardBounds = blizzardBounds{
		activeMin:   hazard.ChaosBlizzardActiveMin,
		activeMax:   hazard.ChaosBlizzardActiveMax,
		forceWindow: hazard.ChaosBlizzardForceWindow,
		calmMin:     hazard.ChaosBlizzardCalmMin,
	}
)

// startBlizzardLocked launches the blizzard sub-cycle for the current
// Snowy window, replacing any running instance. Caller holds mu and has
// already set endsAt.
func (s *Scheduler) startBlizzardLocked(bounds blizzardBounds) {
	if s.cancelBlizzard != nil {
		s.cancelBlizzard()
		s.cancelBlizzard = nil
	}
	base := s.runCtx
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithCancel(base)
	s.cancelBlizzard = cancel
	s.blizzardGen++
	go s.runBlizzard(ctx, bounds, s.endsAt, s.blizzardGen)
}

// runBlizzard alternates active and calm phases until the owning window's
// deadline cannot fit another active phase. The first cycle consumes nearly
// all remaining time when the window opened short. The active flag is
// always cleared on the way out.
func (s *Scheduler) runBlizzard(ctx context.Context, bounds blizzardBounds, deadline time.Time, gen int) {
	defer s.setBlizzardActive(gen, false)

	cycles := 0
	for {
		remaining := deadline.Sub(s.Now())
		active, ok := s.activeSpan(remaining, bounds, cycles)
		if !ok {
			return
		}

		s.setBlizzardActive(gen, true)
		s.announce(ctx, ports.Message{
			Title: "Blizzard",
			Body:  "Whiteout conditions. Hunting is dangerous but the rarest prey is out.",
			Tone:  ports.ToneWarning,
		})
		if !sleepCtx(ctx, active) {
			return
		}
		s.setBlizzardActive(gen, false)
		s.announce(ctx, ports.Message{
			Title: "The blizzard calms",
			Body:  "Visibility returns. Snow keeps falling.",
			Tone:  ports.ToneInfo,
		})
		cycles++

		remaining = deadline.Sub(s.Now())
		if remaining <= bounds.calmMin {
			return
		}
		calm := s.uniformDuration(bounds.calmMin, remaining)
		if !sleepCtx(ctx, calm) {
			return
		}
	}
}

// activeSpan picks the next active-phase length, or reports that no phase
// fits the time left. A window that opened shorter than the force window
// gets one long phase consuming nearly all of it, leaving only a fixed
// short tail.
func (s *Scheduler) activeSpan(remaining time.Duration, bounds blizzardBounds, cycles int) (time.Duration, bool) {
	if remaining < bounds.activeMin+bounds.calmMin {
		return 0, false
	}
	if remaining < bounds.forceWindow && cycles == 0 {
		return remaining - hazard.BlizzardForceTail, true
	}
	hi := bounds.activeMax
	if room := remaining - bounds.calmMin; room < hi {
		hi = room
	}
	if hi < bounds.activeMin {
		return 0, false
	}
	return s.uniformDuration(bounds.activeMin, hi), true
}
