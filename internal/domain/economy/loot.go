package economy

import (
	"math/rand"

	"moonlight/internal/domain/hazard"
)

// Loot is the payout of one successful hunt roll.
type Loot struct {
	Mobs   []string
	Reward int64
}

// RollLoot draws count mobs from the eligible subset of the catalog, each
// weighted by its rarity weight, and sums their rewards. An empty eligible
// subset yields an empty loot.
func RollLoot(r *rand.Rand, catalog []Mob, threshold int64, count int) Loot {
	pool := Eligible(catalog, threshold)
	if len(pool) == 0 || count <= 0 {
		return Loot{}
	}
	weights := make([]float64, len(pool))
	for i, m := range pool {
		weights[i] = m.Weight
	}
	out := Loot{Mobs: make([]string, 0, count)}
	for i := 0; i < count; i++ {
		m := pool[hazard.WeightedIndex(r, weights)]
		out.Mobs = append(out.Mobs, m.Name)
		out.Reward += m.Reward
	}
	return out
}

// RollMobCount draws the number of mobs for a hunt from the profile's
// count distribution.
func RollMobCount(r *rand.Rand, counts []int, weights []float64) int {
	if len(counts) == 0 {
		return 0
	}
	return counts[hazard.WeightedIndex(r, weights)]
}
