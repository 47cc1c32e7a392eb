package console

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"moonlight/internal/app/ports"
)

// Announcer writes announcements to the process log. Stands in for a chat
// integration; the tone picks the log level so danger messages surface in
// filtered logs.
type Announcer struct{}

func (Announcer) Announce(_ context.Context, msg ports.Message) error {
	target := "all"
	if msg.PlayerID != "" {
		target = msg.PlayerID
	}
	switch msg.Tone {
	case ports.ToneDanger:
		hlog.Errorf("[%s] %s: %s", target, msg.Title, msg.Body)
	case ports.ToneWarning:
		hlog.Warnf("[%s] %s: %s", target, msg.Title, msg.Body)
	default:
		hlog.Infof("[%s] %s: %s", target, msg.Title, msg.Body)
	}
	return nil
}
