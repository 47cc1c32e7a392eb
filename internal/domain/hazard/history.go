package hazard

// History is the bounded FIFO of the last kinds chosen by the scheduler.
// When it holds HistoryCapacity pairwise-distinct kinds the next transition
// escalates to Chaos. Not safe for concurrent use; the scheduler is the
// single writer.
type History struct {
	kinds []Kind
}

func NewHistory() *History {
	return &History{kinds: make([]Kind, 0, HistoryCapacity)}
}

// Append records a chosen kind, evicting the oldest entry once full.
func (h *History) Append(k Kind) {
	if len(h.kinds) >= HistoryCapacity {
		h.kinds = h.kinds[1:]
	}
	h.kinds = append(h.kinds, k)
}

// TriggersChaos reports whether the buffer currently holds ChaosTransitions
// pairwise-distinct kinds.
func (h *History) TriggersChaos() bool {
	if len(h.kinds) < ChaosTransitions {
		return false
	}
	seen := make(map[Kind]struct{}, len(h.kinds))
	for _, k := range h.kinds {
		seen[k] = struct{}{}
	}
	return len(seen) >= ChaosTransitions
}

func (h *History) Clear() {
	h.kinds = h.kinds[:0]
}

func (h *History) Len() int {
	return len(h.kinds)
}

// Snapshot returns a copy of the buffer, oldest first.
func (h *History) Snapshot() []Kind {
	out := make([]Kind, len(h.kinds))
	copy(out, h.kinds)
	return out
}
