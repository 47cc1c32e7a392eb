package ports

import "context"

// Tone hints at how an announcement should be rendered by whatever chat
// surface sits behind the announcer.
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneReward  Tone = "reward"
)

// Message is a renderable announcement. PlayerID is empty for global
// messages (weather updates) and set for mentions.
type Message struct {
	Title    string
	Body     string
	Tone     Tone
	PlayerID string
}

// Announcer delivers messages to the shared channel. Delivery is
// fire-and-forget: callers log and swallow errors, except the defeat sweep,
// which backs off and retries on ErrRateLimited.
type Announcer interface {
	Announce(ctx context.Context, msg Message) error
}
