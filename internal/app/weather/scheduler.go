package weather

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"moonlight/internal/app/ports"
	"moonlight/internal/domain/hazard"
)

var ErrInvalidKind = errors.New("invalid weather kind")

// Snapshot is a point-in-time copy of the hazard state for readers.
type Snapshot struct {
	Kind           hazard.Kind
	SubKind        hazard.Kind
	EndsAt         time.Time
	BlizzardActive bool
}

// EffectiveKind is the kind hunts resolve under: the chaos sub-kind while
// Chaos is active, the top-level kind otherwise.
func (s Snapshot) EffectiveKind() hazard.Kind {
	if s.Kind == hazard.Chaos {
		return s.SubKind
	}
	return s.Kind
}

// Chaos reports whether the chaos profile set applies.
func (s Snapshot) Chaos() bool { return s.Kind == hazard.Chaos }

// Scheduler owns the hazard state: the current kind, its deadline, the
// transition history, and the lifecycle of blizzard and chaos sub-cycle
// goroutines. It is the single writer of hazard state; everything else
// reads through Snapshot.
type Scheduler struct {
	Announcer ports.Announcer
	Metrics   ports.WeatherMetrics
	Now       func() time.Time
	Rand      *rand.Rand

	mu             sync.Mutex
	kind           hazard.Kind
	subKind        hazard.Kind
	endsAt         time.Time
	blizzardActive bool
	blizzardGen    int
	history        *hazard.History

	runCtx         context.Context
	cancelSubCycle context.CancelFunc
	cancelBlizzard context.CancelFunc
}

func NewScheduler(announcer ports.Announcer, metrics ports.WeatherMetrics, r *rand.Rand) *Scheduler {
	return &Scheduler{
		Announcer: announcer,
		Metrics:   metrics,
		Now:       time.Now,
		Rand:      r,
		history:   hazard.NewHistory(),
	}
}

// Run drives the tick loop until ctx is cancelled. The zero deadline makes
// the first tick perform the initial transition.
func (s *Scheduler) Run(ctx context.Context) {
	s.mu.Lock()
	s.runCtx = ctx
	s.mu.Unlock()

	ticker := time.NewTicker(hazard.SchedulerTick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.stopSubCycles()
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	s.mu.Lock()
	expired := !s.Now().Before(s.endsAt)
	fromChaos := s.kind == hazard.Chaos
	s.mu.Unlock()
	if !expired {
		return
	}
	if fromChaos {
		s.endChaos(ctx)
		return
	}
	s.transition(ctx)
}

// transition performs one scheduled transition: escalate to Chaos when the
// history holds five distinct kinds, otherwise a weighted roll. A roll that
// lands on the active kind announces and changes nothing, so the next tick
// rolls again.
func (s *Scheduler) transition(ctx context.Context) {
	s.mu.Lock()
	if s.history.TriggersChaos() {
		s.history.Clear()
		s.mu.Unlock()
		s.enterChaos(ctx)
		return
	}
	next := hazard.DrawKind(s.Rand)
	if next == s.kind {
		s.mu.Unlock()
		s.announce(ctx, ports.Message{
			Title: fmt.Sprintf("%s continues", next.Label()),
			Body:  "The weather shows no sign of changing.",
			Tone:  ports.ToneInfo,
		})
		return
	}
	s.history.Append(next)
	s.applyLocked(next, hazard.RegularWeatherDuration)
	s.mu.Unlock()

	s.announceTransition(ctx, next)
}

// Force applies a manual override to a specific regular kind. Forced kinds
// pass through the same cancellation and history bookkeeping as rolled
// ones.
func (s *Scheduler) Force(ctx context.Context, kind hazard.Kind, duration time.Duration) error {
	if !kind.Valid() || kind == hazard.Chaos {
		return ErrInvalidKind
	}
	if duration <= 0 {
		duration = hazard.ManualWeatherDuration
	}
	s.mu.Lock()
	s.history.Append(kind)
	s.applyLocked(kind, duration)
	s.mu.Unlock()

	s.announceTransition(ctx, kind)
	return nil
}

// ForceChaosCheck escalates to Chaos right now iff the history currently
// holds five distinct kinds. Returns whether it fired.
func (s *Scheduler) ForceChaosCheck(ctx context.Context) bool {
	s.mu.Lock()
	triggered := s.history.TriggersChaos()
	if triggered {
		s.history.Clear()
	}
	s.mu.Unlock()
	if triggered {
		s.enterChaos(ctx)
	}
	return triggered
}

// Snapshot returns a copy of the hazard state.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Kind:           s.kind,
		SubKind:        s.subKind,
		EndsAt:         s.endsAt,
		BlizzardActive: s.blizzardActive,
	}
}

// HistoryKinds returns the transition history, oldest first.
func (s *Scheduler) HistoryKinds() []hazard.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Snapshot()
}

// applyLocked installs a new kind: cancels the outgoing sub-cycles, sets
// kind and deadline, and starts the kind's sub-cycle. Caller holds mu.
func (s *Scheduler) applyLocked(kind hazard.Kind, duration time.Duration) {
	s.cancelSubCyclesLocked()
	s.kind = kind
	s.subKind = ""
	s.endsAt = s.Now().Add(duration)
	if s.Metrics != nil {
		s.Metrics.RecordTransition(kind)
	}
	if kind == hazard.Snowy {
		s.startBlizzardLocked(regularBlizzardBounds)
	}
}

func (s *Scheduler) enterChaos(ctx context.Context) {
	s.mu.Lock()
	s.cancelSubCyclesLocked()
	s.kind = hazard.Chaos
	s.subKind = ""
	s.endsAt = s.Now().Add(hazard.ChaosDuration)
	deadline := s.endsAt
	if s.Metrics != nil {
		s.Metrics.RecordTransition(hazard.Chaos)
	}
	base := s.runCtx
	if base == nil {
		base = context.Background()
	}
	subCtx, cancel := context.WithCancel(base)
	s.cancelSubCycle = cancel
	s.mu.Unlock()

	s.announce(ctx, ports.Message{
		Title: "CHAOS",
		Body:  "The sky tears open. All weather is unstable for the next 30 minutes.",
		Tone:  ports.ToneDanger,
	})
	go s.runChaos(subCtx, deadline)
}

// endChaos closes the chaos window and rolls a regular kind. The history
// was cleared on entry, so the follow-up transition can never re-enter
// Chaos immediately.
func (s *Scheduler) endChaos(ctx context.Context) {
	s.stopSubCycles()
	s.mu.Lock()
	s.kind = ""
	s.subKind = ""
	s.mu.Unlock()
	s.announce(ctx, ports.Message{
		Title: "Chaos subsides",
		Body:  "The sky knits itself back together.",
		Tone:  ports.ToneInfo,
	})
	s.transition(ctx)
}

func (s *Scheduler) announceTransition(ctx context.Context, kind hazard.Kind) {
	tone := ports.ToneInfo
	if kind.IsStorm() {
		tone = ports.ToneWarning
	}
	s.announce(ctx, ports.Message{
		Title: fmt.Sprintf("Weather shifts to %s", kind.Label()),
		Body:  weatherBody(kind),
		Tone:  tone,
	})
}

func weatherBody(kind hazard.Kind) string {
	switch kind {
	case hazard.Sunny:
		return "Clear skies. Good hunting, watch for exhaustion."
	case hazard.Rainy:
		return "Steady rain draws the wildlife out."
	case hazard.Snowy:
		return "Snow settles in. Blizzards may follow."
	case hazard.Stormy:
		return "A storm front moves in. Camps are open."
	case hazard.SuperStorm:
		return "A super storm bears down. Find shelter."
	default:
		return ""
	}
}

func (s *Scheduler) announce(ctx context.Context, msg ports.Message) {
	if s.Announcer == nil {
		return
	}
	if err := s.Announcer.Announce(ctx, msg); err != nil {
		hlog.Warnf("weather announce failed: %v", err)
	}
}

func (s *Scheduler) stopSubCycles() {
	s.mu.Lock()
	s.cancelSubCyclesLocked()
	s.mu.Unlock()
}

func (s *Scheduler) cancelSubCyclesLocked() {
	if s.cancelSubCycle != nil {
		s.cancelSubCycle()
		s.cancelSubCycle = nil
	}
	s.cancelBlizzardLocked()
}

func (s *Scheduler) cancelBlizzardLocked() {
	if s.cancelBlizzard != nil {
		s.cancelBlizzard()
		s.cancelBlizzard = nil
	}
	// Bump the generation so a cancelled instance's deferred clear cannot
	// stomp a successor's flag.
	s.blizzardGen++
	s.blizzardActive = false
}

func (s *Scheduler) setBlizzardActive(gen int, v bool) {
	s.mu.Lock()
	if gen == s.blizzardGen {
		s.blizzardActive = v
	}
	s.mu.Unlock()
}

func (s *Scheduler) deadline() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endsAt
}

// uniformDuration draws from [lo, hi] under the scheduler's RNG. The RNG is
// shared with sub-cycle goroutines, so draws stay behind mu.
func (s *Scheduler) uniformDuration(lo, hi time.Duration) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(s.Rand.Int63n(int64(hi-lo)+1))
}

func (s *Scheduler) drawSubKind() hazard.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return hazard.DrawSubKind(s.Rand)
}

// sleepCtx waits for d or cancellation, reporting whether the full wait
// completed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
