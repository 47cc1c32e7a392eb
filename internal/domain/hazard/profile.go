package hazard

import "time"

// Profile parameterizes hunt resolution for one effective kind. The regular
// and chaos variants of each kind share the same shape and differ only in
// numbers, so the resolution engine stays a single routine.
type Profile struct {
	Kind  Kind
	Chaos bool

	// Loot roll outside blizzard phases.
	MobCounts       []int
	MobCountWeights []float64
	LootThreshold   int64

	// Sunny only: chance the hunt costs health instead of paying out.
	ExhaustChance float64
	ExhaustDamage int

	// Snowy only: gates that apply while the blizzard flag is set, and the
	// flat success gate while it is not.
	BlizzardHuntChance    float64
	FrostChance           float64
	FrostDamage           int
	BlizzardMobCounts     []int
	BlizzardMobWeights    []float64
	BlizzardLootThreshold int64
	CalmSuccessChance     float64

	// Stormy / SuperStorm only: delayed storm damage event.
	StormChance     float64
	StormDamage     int
	CampDegradation int
	WarningDelay    time.Duration
}

// HasStormEvent reports whether this profile can roll a storm-damage event.
func (p Profile) HasStormEvent() bool { return p.StormChance > 0 }

var (
	snowyMobCounts       = []int{1, 2, 3}
	snowyMobWeights      = []float64{55, 39, 25}
	blizzardMobCounts    = []int{1, 2, 3, 4}
	blizzardMobWeights   = []float64{54, 43, 33, 21}
	stormyMobCounts      = []int{1, 2, 3}
	stormyMobWeights     = []float64{43, 30, 10}
	superStormMobCounts  = []int{1, 3, 4}
	superStormMobWeights = []float64{54, 22, 15}
	sunnyMobCounts       = []int{2, 3, 4}
	sunnyMobWeights      = []float64{43, 22, 15}
)

var regularProfiles = map[Kind]Profile{
	Sunny: {
		Kind:            Sunny,
		MobCounts:       sunnyMobCounts,
		MobCountWeights: sunnyMobWeights,
		LootThreshold:   20,
		ExhaustChance:   0.15,
		ExhaustDamage:   5,
	},
	Rainy: {
		Kind:            Rainy,
		MobCounts:       []int{2, 3, 4, 5, 6, 7, 8, 9, 10},
		MobCountWeights: []float64{64, 57, 52, 47, 43, 37, 33, 26, 15},
		LootThreshold:   10,
	},
	Snowy: {
		Kind:                  Snowy,
		MobCounts:             snowyMobCounts,
		MobCountWeights:       snowyMobWeights,
		LootThreshold:         50,
		BlizzardHuntChance:    0.55,
		FrostChance:           0.19,
		FrostDamage:           20,
		BlizzardMobCounts:     blizzardMobCounts,
		BlizzardMobWeights:    blizzardMobWeights,
		BlizzardLootThreshold: 200,
		CalmSuccessChance:     0.78,
	},
	Stormy: {
		Kind:            Stormy,
		MobCounts:       stormyMobCounts,
		MobCountWeights: stormyMobWeights,
		LootThreshold:   50,
		StormChance:     0.30,
		StormDamage:     20,
		CampDegradation: 40,
		WarningDelay:    StormWarningDuration,
	},
	SuperStorm: {
		Kind:            SuperStorm,
		MobCounts:       superStormMobCounts,
		MobCountWeights: superStormMobWeights,
		LootThreshold:   400,
		StormChance:     0.20,
		StormDamage:     40,
		CampDegradation: 60,
		WarningDelay:    StormWarningDuration,
	},
}

var chaosProfiles = map[Kind]Profile{
	Sunny: {
		Kind:            Sunny,
		Chaos:           true,
		MobCounts:       sunnyMobCounts,
		MobCountWeights: sunnyMobWeights,
		LootThreshold:   500,
		ExhaustChance:   0.15,
		ExhaustDamage:   5,
	},
	Rainy: {
		Kind:            Rainy,
		Chaos:           true,
		MobCounts:       []int{1, 2, 4, 5, 6, 7, 8, 9, 10},
		MobCountWeights: []float64{64, 57, 52, 47, 43, 37, 33, 26, 15},
		LootThreshold:   500,
	},
	Snowy: {
		Kind:                  Snowy,
		Chaos:                 true,
		MobCounts:             snowyMobCounts,
		MobCountWeights:       snowyMobWeights,
		LootThreshold:         500,
		BlizzardHuntChance:    0.55,
		FrostChance:           0.25,
		FrostDamage:           40,
		BlizzardMobCounts:     blizzardMobCounts,
		BlizzardMobWeights:    blizzardMobWeights,
		BlizzardLootThreshold: 1500,
		CalmSuccessChance:     0.50,
	},
	Stormy: {
		Kind:            Stormy,
		Chaos:           true,
		MobCounts:       stormyMobCounts,
		MobCountWeights: stormyMobWeights,
		LootThreshold:   2000,
		StormChance:     0.40,
		StormDamage:     60,
		CampDegradation: 80,
		WarningDelay:    StormWarningDurationChaos + ChaosStormSchedulePad,
	},
	SuperStorm: {
		Kind:            SuperStorm,
		Chaos:           true,
		MobCounts:       superStormMobCounts,
		MobCountWeights: superStormMobWeights,
		LootThreshold:   8000,
		StormChance:     0.50,
		StormDamage:     90,
		CampDegradation: 200,
		WarningDelay:    StormWarningDurationChaos + ChaosStormSchedulePad,
	},
}

// ProfileFor selects the resolution profile for an effective kind. The kind
// must be one of the five regular kinds; Chaos itself resolves through its
// current sub-kind.
func ProfileFor(kind Kind, chaos bool) (Profile, bool) {
	src := regularProfiles
	if chaos {
		src = chaosProfiles
	}
	p, ok := src[kind]
	return p, ok
}
