package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moonlight/internal/app/ports"
	"moonlight/internal/domain/hazard"
)

// runChaos cycles the chaos sub-weather until the fixed deadline set on
// entry. Each round draws a uniform sub-kind; a draw equal to the current
// one is re-rolled immediately instead of holding twice.
func (s *Scheduler) runChaos(ctx context.Context, deadline time.Time) {
	first := true
	var prev hazard.Kind
	for {
		if ctx.Err() != nil {
			return
		}
		remaining := deadline.Sub(s.Now())
		if remaining <= 0 {
			return
		}

		pick := s.drawSubKind()
		if !first && pick == prev {
			continue
		}

		s.setSubKind(pick)
		if first {
			s.announce(ctx, ports.Message{
				Title: "The chaos churns",
				Body:  chaosShiftBody(pick),
				Tone:  ports.ToneDanger,
			})
		} else {
			s.announce(ctx, ports.Message{
				Title: fmt.Sprintf("Chaos shifts to %s", pick.Label()),
				Body:  weatherBody(pick),
				Tone:  ports.ToneDanger,
			})
		}

		hold := hazard.ChaosSubWeatherDuration
		if remaining < hold {
			hold = remaining
		}
		if pick == hazard.Snowy {
			s.startChaosBlizzard(hold)
		} else {
			s.stopBlizzard()
		}

		first = false
		prev = pick
		if !sleepCtx(ctx, hold) {
			return
		}
	}
}

// chaosShiftBody renders the opening shift as a cascade through every kind
// before settling, so the first pick reads as the sky thrashing.
func chaosShiftBody(settled hazard.Kind) string {
	labels := make([]string, 0, len(hazard.RegularKinds)+1)
	for _, k := range hazard.RegularKinds {
		if k != settled {
			labels = append(labels, k.Label())
		}
	}
	labels = append(labels, settled.Label())
	return "The sky flickers through " + strings.Join(labels, ", ") + " and settles."
}

func (s *Scheduler) setSubKind(k hazard.Kind) {
	s.mu.Lock()
	s.subKind = k
	s.mu.Unlock()
}

// startChaosBlizzard (re)starts the chaos-scaled blizzard for this
// sub-weather hold.
func (s *Scheduler) startChaosBlizzard(hold time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	go s.runBlizzard(ctx, chaosBlizzardBounds, s.Now().Add(hold), s.blizzardGen)
}

func (s *Scheduler) stopBlizzard() {
	s.mu.Lock()
	s.cancelBlizzardLocked()
	s.mu.Unlock()
}
