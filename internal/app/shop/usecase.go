package shop

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"moonlight/internal/app/ports"
	"moonlight/internal/app/state"
	"moonlight/internal/domain/economy"
)

var (
	ErrInvalidRequest    = errors.New("invalid shop request")
	ErrUnknownItem       = errors.New("unknown item")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoPotions         = errors.New("no healing potions left")
	ErrFullHealth        = errors.New("already at full health")
)

// Item is one fixed shop entry. apply adds the purchased quantity to the
// record with saturating arithmetic.
type Item struct {
	ID    string
	Name  string
	Price int64
	apply func(rec *economy.PlayerRecord, quantity int64)
}

// Catalog is the fixed shop inventory.
var Catalog = []Item{
	{
		ID: "shotgun", Name: "Shotgun", Price: 20,
		apply: func(rec *economy.PlayerRecord, q int64) {
			rec.GunDurability = rec.GunDurability.Add(10 * q)
		},
	},
	{
		ID: "ammo", Name: "Ammo box", Price: 10,
		apply: func(rec *economy.PlayerRecord, q int64) {
			rec.Ammo = rec.Ammo.Add(5 * q)
		},
	},
	{
		ID: "camp_kit", Name: "Camp kit", Price: 50,
		apply: func(rec *economy.PlayerRecord, q int64) {
			rec.CampDurability = rec.CampDurability.Add(10 * q)
		},
	},
	{
		ID: "potion", Name: "Healing potion", Price: 50,
		apply: func(rec *economy.PlayerRecord, q int64) {
			rec.HealingPotions = rec.HealingPotions.Add(q)
		},
	},
}

// ItemByID looks up a catalog entry.
func ItemByID(id string) (Item, bool) {
	for _, item := range Catalog {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

type PurchaseResult struct {
	Item     Item
	Quantity int64
	Cost     int64
	Balance  economy.Counter
	Record   economy.PlayerRecord
}

// UseCase sells the fixed catalog and consumes potions.
type UseCase struct {
	State   *state.State
	Players ports.PlayerRepository
	Coins   ports.CoinRepository
}

// Buy charges for quantity items and applies them to the record. A balance
// at the ceiling affords anything and loses nothing.
func (u *UseCase) Buy(ctx context.Context, playerID, itemID string, quantity int64) (PurchaseResult, error) {
	if strings.TrimSpace(playerID) == "" {
		return PurchaseResult{}, ErrInvalidRequest
	}
	item, ok := ItemByID(itemID)
	if !ok {
		return PurchaseResult{}, ErrUnknownItem
	}
	if quantity <= 0 {
		return PurchaseResult{}, ErrInvalidQuantity
	}

	u.State.EnsurePlayer(playerID)
	cost := item.Price * quantity
	// An overflowing quantity would wrap cost negative and turn the charge
	// into a credit.
	if cost/quantity != item.Price {
		return PurchaseResult{}, ErrInvalidQuantity
	}
	remaining, ok := u.State.SpendCoins(playerID, cost)
	if !ok {
		return PurchaseResult{}, ErrInsufficientFunds
	}
	rec, _ := u.State.MutatePlayer(playerID, func(rec *economy.PlayerRecord) error {
		item.apply(rec, quantity)
		return nil
	})

	u.persistPlayer(ctx, rec)
	u.persistCoins(ctx, playerID, remaining)
	return PurchaseResult{Item: item, Quantity: quantity, Cost: cost, Balance: remaining, Record: rec}, nil
}

// UsePotion consumes one healing potion for 5 health, capped at 100.
func (u *UseCase) UsePotion(ctx context.Context, playerID string) (economy.PlayerRecord, error) {
	if strings.TrimSpace(playerID) == "" {
		return economy.PlayerRecord{}, ErrInvalidRequest
	}
	u.State.EnsurePlayer(playerID)
	rec, err := u.State.MutatePlayer(playerID, func(rec *economy.PlayerRecord) error {
		if rec.HealingPotions <= 0 {
			return ErrNoPotions
		}
		if rec.Health >= economy.DefaultHealth {
			return ErrFullHealth
		}
		rec.HealingPotions = rec.HealingPotions.Sub(1)
		rec.Health += economy.PotionHeal
		if rec.Health > economy.DefaultHealth {
			rec.Health = economy.DefaultHealth
		}
		return nil
	})
	if err != nil {
		return rec, err
	}
	u.persistPlayer(ctx, rec)
	return rec, nil
}

func (u *UseCase) persistPlayer(ctx context.Context, rec economy.PlayerRecord) {
	if u.Players == nil {
		return
	}
	if err := u.Players.Upsert(ctx, rec); err != nil {
		hlog.Errorf("persist player %s: %v", rec.ID, err)
	}
}

func (u *UseCase) persistCoins(ctx context.Context, playerID string, balance economy.Counter) {
	if u.Coins == nil {
		return
	}
	if err := u.Coins.Upsert(ctx, playerID, balance); err != nil {
		hlog.Errorf("persist coins %s: %v", playerID, err)
	}
}
