package inmemory

import (
	"testing"

	"moonlight/internal/domain/hazard"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordHunt("loot")
	r.RecordHunt("loot")
	r.RecordHunt("exhausted")
	r.RecordRejection("cooldown")
	r.RecordTransition(hazard.Sunny)
	r.RecordTransition(hazard.Chaos)

	s := r.Snapshot()
	if s.HuntTotal != 3 {
		t.Fatalf("expected total 3, got %d", s.HuntTotal)
	}
	if s.HuntRejected != 1 {
		t.Fatalf("expected rejected 1, got %d", s.HuntRejected)
	}
	if s.ByOutcome["loot"] != 2 {
		t.Fatalf("expected loot count 2, got %d", s.ByOutcome["loot"])
	}
	if s.ByRejection["cooldown"] != 1 {
		t.Fatalf("expected cooldown count 1")
	}
	if s.Transitions != 2 {
		t.Fatalf("expected transitions 2, got %d", s.Transitions)
	}
	if s.ByWeatherKind["chaos"] != 1 {
		t.Fatalf("expected chaos count 1")
	}
}
