package hunt

import (
	"math/rand"

	"moonlight/internal/domain/economy"
	"moonlight/internal/domain/hazard"
)

// Outcome labels what a hunt roll produced.
type Outcome string

const (
	OutcomeLoot      Outcome = "loot"
	OutcomeExhausted Outcome = "exhausted"
	OutcomeFrostbite Outcome = "frostbite"
	OutcomeNoCatch   Outcome = "no_catch"
)

// rollResult is the pure outcome of one hunt roll, before any ledger
// mutation.
type rollResult struct {
	Outcome      Outcome
	Loot         economy.Loot
	HealthDamage int
	StormEvent   bool
}

// roll resolves a hunt against one hazard profile. All branching lives
// here; the caller applies the result to shared state. The blizzard flag
// only matters for Snowy profiles.
func roll(r *rand.Rand, profile hazard.Profile, blizzardActive bool) rollResult {
	if profile.ExhaustChance > 0 && r.Float64() < profile.ExhaustChance {
		return rollResult{Outcome: OutcomeExhausted, HealthDamage: profile.ExhaustDamage}
	}

	counts := profile.MobCounts
	weights := profile.MobCountWeights
	threshold := profile.LootThreshold

	if profile.Kind == hazard.Snowy {
		if blizzardActive {
			if r.Float64() >= profile.BlizzardHuntChance {
				return rollResult{Outcome: OutcomeNoCatch}
			}
			if r.Float64() < profile.FrostChance {
				return rollResult{Outcome: OutcomeFrostbite, HealthDamage: profile.FrostDamage}
			}
			counts = profile.BlizzardMobCounts
			weights = profile.BlizzardMobWeights
			threshold = profile.BlizzardLootThreshold
		} else if r.Float64() >= profile.CalmSuccessChance {
			return rollResult{Outcome: OutcomeNoCatch}
		}
	}

	n := economy.RollMobCount(r, counts, weights)
	loot := economy.RollLoot(r, economy.Catalog, threshold, n)

	result := rollResult{Outcome: OutcomeLoot, Loot: loot}
	if profile.HasStormEvent() && r.Float64() < profile.StormChance {
		result.StormEvent = true
	}
	return result
}
