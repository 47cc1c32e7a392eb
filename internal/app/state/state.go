package state

import (
	"sync"
	"time"

	"moonlight/internal/domain/economy"
)

// State is the process-wide simulation state: player ledgers, coin
// balances, the camp registry, and pending storm warnings. One mutex guards
// all of it; hazard state lives in the weather scheduler and is not held
// here. The external store is a durability mirror only, so every method
// returns copies and callers persist afterwards.
type State struct {
	mu       sync.Mutex
	players  map[string]*economy.PlayerRecord
	coins    map[string]economy.Counter
	camps    map[string]time.Time
	warnings map[string]time.Time
	lastHunt map[string]time.Time
}

func New() *State {
	return &State{
		players:  make(map[string]*economy.PlayerRecord),
		coins:    make(map[string]economy.Counter),
		camps:    make(map[string]time.Time),
		warnings: make(map[string]time.Time),
		lastHunt: make(map[string]time.Time),
	}
}

// NewFromSnapshot seeds state from the persistence snapshot loaded at
// startup. Counter fields saturate on load so values stored beyond the
// ceiling come back as the ceiling.
func NewFromSnapshot(players []economy.PlayerRecord, coins map[string]economy.Counter) *State {
	s := New()
	for _, p := range players {
		rec := p
		rec.GunDurability = economy.ClampValue(int64(rec.GunDurability))
		rec.Ammo = economy.ClampValue(int64(rec.Ammo))
		rec.CampDurability = economy.ClampValue(int64(rec.CampDurability))
		rec.HealingPotions = economy.ClampValue(int64(rec.HealingPotions))
		s.players[rec.ID] = &rec
	}
	for id, c := range coins {
		s.coins[id] = economy.ClampValue(int64(c))
	}
	return s
}

// EnsurePlayer returns the player's record, creating it with first-contact
// defaults when missing. The second value reports whether a record (or coin
// balance) was created and needs an initial persist.
func (s *State) EnsurePlayer(id string) (economy.PlayerRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := false
	rec, ok := s.players[id]
	if !ok {
		r := economy.NewPlayerRecord(id)
		rec = &r
		s.players[id] = rec
		created = true
	}
	if _, ok := s.coins[id]; !ok {
		s.coins[id] = 0
		created = true
	}
	return *rec, created
}

// Player returns a copy of the record if it exists.
func (s *State) Player(id string) (economy.PlayerRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.players[id]
	if !ok {
		return economy.PlayerRecord{}, false
	}
	return *rec, true
}

// UpdatePlayer overwrites the stored record.
func (s *State) UpdatePlayer(rec economy.PlayerRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := rec
	s.players[rec.ID] = &r
}

// MutatePlayer applies fn to the stored record as one critical section and
// returns the resulting copy. fn can veto the mutation by returning an
// error; the stored record is then left untouched and the error passed
// through. Unknown players get a first-contact record first.
func (s *State) MutatePlayer(id string, fn func(rec *economy.PlayerRecord) error) (economy.PlayerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.players[id]
	if !ok {
		r := economy.NewPlayerRecord(id)
		rec = &r
		s.players[id] = rec
	}
	next := *rec
	if err := fn(&next); err != nil {
		return *rec, err
	}
	*rec = next
	return next, nil
}

// AllPlayers returns copies of every record.
func (s *State) AllPlayers() []economy.PlayerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]economy.PlayerRecord, 0, len(s.players))
	for _, rec := range s.players {
		out = append(out, *rec)
	}
	return out
}

// Coins returns the balance, zero for unknown players.
func (s *State) Coins(id string) economy.Counter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coins[id]
}

// SetCoins overwrites the balance, clamped into the counter range.
func (s *State) SetCoins(id string, v int64) economy.Counter {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := economy.ClampValue(v)
	s.coins[id] = c
	return c
}

// AddCoins applies a saturating gain. A balance already at the ceiling is
// left untouched and ok=false signals the caller to skip the redundant
// persist.
func (s *State) AddCoins(id string, amount int64) (economy.Counter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.coins[id]
	if cur.AtCeiling() && amount > 0 {
		return cur, false
	}
	next := cur.Add(amount)
	s.coins[id] = next
	return next, true
}

// SubCoins applies a saturating spend.
func (s *State) SubCoins(id string, amount int64) economy.Counter {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.coins[id].Sub(amount)
	s.coins[id] = next
	return next
}

// SpendCoins debits cost if the balance covers it, as one critical
// section. A balance at the ceiling affords anything and is left
// untouched. ok=false means insufficient funds and no state change.
func (s *State) SpendCoins(id string, cost int64) (economy.Counter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.coins[id]
	if cur.AtCeiling() {
		return cur, true
	}
	if int64(cur) < cost {
		return cur, false
	}
	next := cur.Sub(cost)
	s.coins[id] = next
	return next, true
}

// TransferResult reports what a TransferCoins call did to each side.
type TransferResult struct {
	PayerBalance economy.Counter
	PayeeBalance economy.Counter
	// PayeeCredited is false when the payee sat at the ceiling and the
	// credit was skipped, so the caller can skip the redundant persist.
	PayeeCredited bool
}

// TransferCoins moves amount from payer to payee as one critical section,
// so two concurrent transfers cannot both pass the funds check against the
// same balance. A payer at the ceiling pays without losing anything; a
// payee at the ceiling gains nothing.
func (s *State) TransferCoins(payer, payee string, amount int64) (TransferResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.coins[payer]
	if !from.AtCeiling() && int64(from) < amount {
		return TransferResult{PayerBalance: from, PayeeBalance: s.coins[payee]}, false
	}
	from = from.Sub(amount)
	s.coins[payer] = from

	res := TransferResult{PayerBalance: from, PayeeBalance: s.coins[payee]}
	if to := s.coins[payee]; !to.AtCeiling() {
		to = to.Add(amount)
		s.coins[payee] = to
		res.PayeeBalance = to
		res.PayeeCredited = true
	}
	return res, true
}

// AllCoins returns a copy of every balance.
func (s *State) AllCoins() map[string]economy.Counter {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]economy.Counter, len(s.coins))
	for id, c := range s.coins {
		out[id] = c
	}
	return out
}

// InCamp reports camp membership.
func (s *State) InCamp(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.camps[id]
	return ok
}

// EnterCamp registers the player; false on double entry.
func (s *State) EnterCamp(id string, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.camps[id]; ok {
		return false
	}
	s.camps[id] = at
	return true
}

// LeaveCamp removes the player; false when not camping.
func (s *State) LeaveCamp(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.camps[id]; !ok {
		return false
	}
	delete(s.camps, id)
	return true
}

// HasStormWarning reports a pending storm-damage timer.
func (s *State) HasStormWarning(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.warnings[id]
	return ok
}

// SetStormWarning registers a pending storm-damage timer.
func (s *State) SetStormWarning(id string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings[id] = at
}

// TryHunt enforces the per-player hunt rate limit, recording the attempt
// when admitted. Admins bypass the cooldown entirely.
func (s *State) TryHunt(id string, now time.Time, cooldown time.Duration, admin bool) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if admin {
		s.lastHunt[id] = now
		return 0, true
	}
	if last, ok := s.lastHunt[id]; ok {
		if remaining := cooldown - now.Sub(last); remaining > 0 {
			return remaining, false
		}
	}
	s.lastHunt[id] = now
	return 0, true
}

// StormOutcome describes what a delayed storm resolution did.
type StormOutcome int

const (
	// StormNoWarning means the warning was already consumed; nothing ran.
	StormNoWarning StormOutcome = iota
	// StormHit means the player was caught in the open and took damage.
	StormHit
	// StormCampHeld means the camp absorbed the blow as durability loss.
	StormCampHeld
	// StormCampDestroyed means durability ran out: the camp is gone and the
	// degradation landed on health instead.
	StormCampDestroyed
)

// ResolveStormWarning runs the delayed storm-damage resolution as a single
// critical section: it re-checks the warning (double-resolution guard),
// branches on camp membership, applies damage or degradation, and clears
// the warning. The returned record is the post-resolution copy.
func (s *State) ResolveStormWarning(id string, damage, degradation int) (StormOutcome, economy.PlayerRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.warnings[id]; !ok {
		return StormNoWarning, economy.PlayerRecord{}
	}
	rec, ok := s.players[id]
	if !ok {
		delete(s.warnings, id)
		return StormNoWarning, economy.PlayerRecord{}
	}
	defer delete(s.warnings, id)

	if _, camping := s.camps[id]; !camping {
		rec.Damage(damage)
		return StormHit, *rec
	}

	rec.CampDurability = rec.CampDurability.Sub(int64(degradation))
	if rec.CampDurability <= 0 {
		rec.CampDurability = 0
		delete(s.camps, id)
		rec.Damage(degradation)
		return StormCampDestroyed, *rec
	}
	return StormCampHeld, *rec
}

// DefeatResult is one defeated player's sweep outcome.
type DefeatResult struct {
	Record economy.PlayerRecord
	Losses map[string]economy.Counter
}

// SweepDefeated finds every player at zero health, applies defeat losses,
// and returns the results for persistence and announcement.
func (s *State) SweepDefeated() []DefeatResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []DefeatResult
	for _, rec := range s.players {
		if !rec.Defeated() {
			continue
		}
		losses := rec.DefeatLosses()
		out = append(out, DefeatResult{Record: *rec, Losses: losses})
	}
	return out
}
