package hunt

import (
	"moonlight/internal/domain/economy"
	"moonlight/internal/domain/hazard"
)

type Request struct {
	PlayerID string
	Admin    bool
}

type Response struct {
	Outcome       Outcome
	Weather       hazard.Kind
	Chaos         bool
	Mobs          []string
	Reward        int64
	Balance       economy.Counter
	Health        int
	Ammo          economy.Counter
	GunDurability economy.Counter
	StormWarning  bool
}
