package camp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"moonlight/internal/app/ports"
	"moonlight/internal/app/state"
	"moonlight/internal/app/weather"
	"moonlight/internal/domain/economy"
	"moonlight/internal/domain/hazard"
)

var (
	ErrInvalidRequest  = errors.New("invalid camp request")
	ErrNotStormWeather = errors.New("camping is only open during a storm")
	ErrAlreadyCamping  = errors.New("already camping")
	ErrNotCamping      = errors.New("not camping")
)

type HazardSource interface {
	Snapshot() weather.Snapshot
}

type Request struct {
	PlayerID string
}

type Response struct {
	Weather        hazard.Kind
	CampDurability economy.Counter
	// Advisory is set when the camp's durability sits below the kind's
	// advised minimum. Entry is still granted.
	Advisory          bool
	AdvisoryThreshold int64
}

// UseCase guards the camp registry. Entry is only open while the effective
// hazard is a storm kind; leaving is always allowed for members.
type UseCase struct {
	State     *state.State
	Hazard    HazardSource
	Players   ports.PlayerRepository
	Announcer ports.Announcer
	Now       func() time.Time
}

func (u *UseCase) Enter(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.PlayerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	snap := u.Hazard.Snapshot()
	effective := snap.EffectiveKind()
	if !effective.IsStorm() {
		return Response{}, ErrNotStormWeather
	}

	rec, created := u.State.EnsurePlayer(req.PlayerID)
	if created {
		u.persist(ctx, rec)
	}
	if !u.State.EnterCamp(req.PlayerID, u.Now()) {
		return Response{}, ErrAlreadyCamping
	}

	resp := Response{Weather: effective, CampDurability: rec.CampDurability}
	thresholds := hazard.CampAdvisoryThreshold
	if snap.Chaos() {
		thresholds = hazard.CampAdvisoryThresholdChaos
	}
	if advised := thresholds[effective]; rec.CampDurability < economy.Counter(advised) {
		resp.Advisory = true
		resp.AdvisoryThreshold = advised
		u.announce(ctx, ports.Message{
			Title:    "Camp is in poor shape",
			Body:     fmt.Sprintf("Durability %s is below the advised %d for a %s.", rec.CampDurability, advised, effective.Label()),
			Tone:     ports.ToneWarning,
			PlayerID: req.PlayerID,
		})
	}
	return resp, nil
}

func (u *UseCase) Leave(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.PlayerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	if !u.State.LeaveCamp(req.PlayerID) {
		return Response{}, ErrNotCamping
	}
	rec, _ := u.State.Player(req.PlayerID)
	return Response{CampDurability: rec.CampDurability}, nil
}

// persist mirrors a freshly created record so the store knows the player
// before their first hunt or purchase.
func (u *UseCase) persist(ctx context.Context, rec economy.PlayerRecord) {
	if u.Players == nil {
		return
	}
	if err := u.Players.Upsert(ctx, rec); err != nil {
		hlog.Errorf("persist player %s: %v", rec.ID, err)
	}
}

func (u *UseCase) announce(ctx context.Context, msg ports.Message) {
	if u.Announcer == nil {
		return
	}
	if err := u.Announcer.Announce(ctx, msg); err != nil {
		hlog.Warnf("camp announce failed: %v", err)
	}
}
