package memory

import (
	"context"
	"sync"

	"moonlight/internal/app/ports"
)

// Announcer collects messages for assertions and can simulate a rate
// limit for the first FailFirst deliveries.
type Announcer struct {
	mu        sync.Mutex
	messages  []ports.Message
	attempts  int
	FailFirst int
}

func (a *Announcer) Announce(_ context.Context, msg ports.Message) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attempts++
	if a.attempts <= a.FailFirst {
		return ports.ErrRateLimited
	}
	a.messages = append(a.messages, msg)
	return nil
}

func (a *Announcer) Messages() []ports.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]ports.Message, len(a.messages))
	copy(out, a.messages)
	return out
}

func (a *Announcer) Attempts() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.attempts
}
