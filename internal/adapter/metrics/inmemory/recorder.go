package inmemory

import (
	"sync"

	"moonlight/internal/domain/hazard"
)

type Snapshot struct {
	HuntTotal     uint64            `json:"hunt_total"`
	HuntRejected  uint64            `json:"hunt_rejected"`
	ByOutcome     map[string]uint64 `json:"by_outcome"`
	ByRejection   map[string]uint64 `json:"by_rejection"`
	Transitions   uint64            `json:"weather_transitions"`
	ByWeatherKind map[string]uint64 `json:"by_weather_kind"`
}

// Recorder is the in-memory KPI counter behind /ops/kpi. It implements
// both ports.HuntMetrics and ports.WeatherMetrics.
type Recorder struct {
	mu          sync.Mutex
	hunts       uint64
	rejections  uint64
	byOutcome   map[string]uint64
	byRejection map[string]uint64
	transitions uint64
	byKind      map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byOutcome:   map[string]uint64{},
		byRejection: map[string]uint64{},
		byKind:      map[string]uint64{},
	}
}

func (r *Recorder) RecordHunt(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hunts++
	r.byOutcome[outcome]++
}

func (r *Recorder) RecordRejection(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejections++
	r.byRejection[reason]++
}

func (r *Recorder) RecordTransition(kind hazard.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions++
	r.byKind[string(kind)]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		HuntTotal:     r.hunts,
		HuntRejected:  r.rejections,
		Transitions:   r.transitions,
		ByOutcome:     make(map[string]uint64, len(r.byOutcome)),
		ByRejection:   make(map[string]uint64, len(r.byRejection)),
		ByWeatherKind: make(map[string]uint64, len(r.byKind)),
	}
	for k, v := range r.byOutcome {
		out.ByOutcome[k] = v
	}
	for k, v := range r.byRejection {
		out.ByRejection[k] = v
	}
	for k, v := range r.byKind {
		out.ByWeatherKind[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
