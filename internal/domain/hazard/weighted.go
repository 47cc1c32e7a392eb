package hazard

import "math/rand"

// WeightedIndex draws an index with probability proportional to its weight.
// Zero or negative total weight falls back to a uniform draw.
func WeightedIndex(r *rand.Rand, weights []float64) int {
	if len(weights) == 0 {
		return 0
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return r.Intn(len(weights))
	}
	target := r.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if target < w {
			return i
		}
		target -= w
	}
	return len(weights) - 1
}

// DrawKind performs the scheduler's weighted roll over the four base kinds
// with the Stormy to SuperStorm upgrade applied.
func DrawKind(r *rand.Rand) Kind {
	k := drawKinds[WeightedIndex(r, drawWeights)]
	if k == Stormy && r.Float64() <= SuperStormUpgradeChance {
		k = SuperStorm
	}
	return k
}

// DrawSubKind picks the chaos sub-weather uniformly over the regular kinds.
func DrawSubKind(r *rand.Rand) Kind {
	return RegularKinds[r.Intn(len(RegularKinds))]
}
