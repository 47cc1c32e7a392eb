package hazard

import "strings"

// Kind is one of the six weather states. Five regular kinds plus Chaos,
// the compound state reached after five distinct regular kinds in a row.
type Kind string

const (
	Sunny      Kind = "sunny"
	Rainy      Kind = "rainy"
	Snowy      Kind = "snowy"
	Stormy     Kind = "stormy"
	SuperStorm Kind = "super_storm"
	Chaos      Kind = "chaos"
)

// RegularKinds lists every kind the scheduler can roll or cycle through,
// in a fixed order. Chaos is never part of a regular draw.
var RegularKinds = []Kind{Sunny, Rainy, Snowy, Stormy, SuperStorm}

// drawKinds and drawWeights parameterize the scheduler's weighted roll.
// SuperStorm is not drawn directly; a Stormy roll upgrades with
// SuperStormUpgradeChance.
var (
	drawKinds   = []Kind{Sunny, Rainy, Snowy, Stormy}
	drawWeights = []float64{43, 43, 43, 35}
)

func (k Kind) Valid() bool {
	switch k {
	case Sunny, Rainy, Snowy, Stormy, SuperStorm, Chaos:
		return true
	}
	return false
}

// IsStorm reports whether the kind deals storm damage and permits camping.
func (k Kind) IsStorm() bool {
	return k == Stormy || k == SuperStorm
}

func (k Kind) String() string { return string(k) }

// Label renders the kind the way announcements show it.
func (k Kind) Label() string {
	switch k {
	case SuperStorm:
		return "Super Storm"
	case Chaos:
		return "Chaos"
	default:
		s := string(k)
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// ParseKind normalizes caller input ("Super Storm", "super_storm", "SUNNY")
// into a Kind. Chaos cannot be requested by name.
func ParseKind(s string) (Kind, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	k := Kind(normalized)
	if !k.Valid() || k == Chaos {
		return "", false
	}
	return k, true
}
