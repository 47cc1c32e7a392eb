package hazard

import "time"

const (
	RegularWeatherDuration  = 900 * time.Second
	ChaosDuration           = 1800 * time.Second
	ChaosSubWeatherDuration = 300 * time.Second
	ManualWeatherDuration   = 900 * time.Second

	StormWarningDuration      = 10 * time.Second
	StormWarningDurationChaos = 0 * time.Second
	// Chaos storm resolutions schedule with a fixed pad on top of the
	// warning duration, so a zero warning still leaves a camp window.
	ChaosStormSchedulePad = 5 * time.Second

	SchedulerTick    = 1 * time.Second
	DefeatSweepTick  = 2 * time.Second
	HuntCooldown     = 10 * time.Second
	HistoryCapacity  = 5
	ChaosTransitions = 5

	SuperStormUpgradeChance = 0.10
)

// Blizzard sub-cycle bounds, regular variant.
const (
	BlizzardActiveMin   = 60 * time.Second
	BlizzardActiveMax   = 180 * time.Second
	BlizzardForceWindow = 300 * time.Second
	BlizzardCalmMin     = 60 * time.Second
	// Tail left unused when a short window forces one long active phase.
	BlizzardForceTail = 5 * time.Second
)

// Blizzard sub-cycle bounds, chaos-scaled variant.
const (
	ChaosBlizzardActiveMin   = 20 * time.Second
	ChaosBlizzardActiveMax   = 40 * time.Second
	ChaosBlizzardForceWindow = 60 * time.Second
	ChaosBlizzardCalmMin     = 10 * time.Second
)

// StormDamage and CampDegradation are keyed by storm kind; the chaos maps
// apply while the storm is a Chaos sub-kind.
var (
	StormDamage          = map[Kind]int{Stormy: 20, SuperStorm: 40}
	StormDamageChaos     = map[Kind]int{Stormy: 60, SuperStorm: 90}
	CampDegradation      = map[Kind]int{Stormy: 40, SuperStorm: 60}
	CampDegradationChaos = map[Kind]int{Stormy: 80, SuperStorm: 200}

	// Advisory camp durability below which entry warns (never blocks).
	CampAdvisoryThreshold      = map[Kind]int64{Stormy: 40, SuperStorm: 70}
	CampAdvisoryThresholdChaos = map[Kind]int64{Stormy: 80, SuperStorm: 200}
)
