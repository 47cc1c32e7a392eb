package economy

// PlayerRecord holds one player's mutable resources. Health is a plain
// 0..100 gauge; everything else is a saturating counter.
type PlayerRecord struct {
	ID             string
	Health         int
	GunDurability  Counter
	Ammo           Counter
	CampDurability Counter
	HealingPotions Counter
}

const (
	DefaultHealth         = 100
	DefaultGunDurability  = 30
	DefaultAmmo           = 30
	DefaultCampDurability = 100
	DefaultHealingPotions = 1

	PotionHeal = 5
)

// NewPlayerRecord returns the first-contact defaults.
func NewPlayerRecord(id string) PlayerRecord {
	return PlayerRecord{
		ID:             id,
		Health:         DefaultHealth,
		GunDurability:  DefaultGunDurability,
		Ammo:           DefaultAmmo,
		CampDurability: DefaultCampDurability,
		HealingPotions: DefaultHealingPotions,
	}
}

// Damage lowers health, clamped through the counter rules so admin-inflated
// health values degrade consistently.
func (p *PlayerRecord) Damage(amount int) {
	p.Health = int(Counter(p.Health).Sub(int64(amount)))
}

// Defeated reports whether the record is due for the defeat sweep.
func (p *PlayerRecord) Defeated() bool { return p.Health <= 0 }

// DefeatLosses halves every non-health resource through saturating
// subtraction, resets health, and returns the per-resource losses.
func (p *PlayerRecord) DefeatLosses() map[string]Counter {
	losses := map[string]Counter{
		"gun_durability":  p.GunDurability / 2,
		"ammo":            p.Ammo / 2,
		"camp_durability": p.CampDurability / 2,
		"healing_potions": p.HealingPotions / 2,
	}
	p.GunDurability = p.GunDurability.Sub(int64(losses["gun_durability"]))
	p.Ammo = p.Ammo.Sub(int64(losses["ammo"]))
	p.CampDurability = p.CampDurability.Sub(int64(losses["camp_durability"]))
	p.HealingPotions = p.HealingPotions.Sub(int64(losses["healing_potions"]))
	p.Health = DefaultHealth
	return losses
}
