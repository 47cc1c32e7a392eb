package shop

import (
	"context"
	"errors"
	"testing"

	"moonlight/internal/app/state"
	"moonlight/internal/domain/economy"
)

func TestBuyAppliesItemAndCharges(t *testing.T) {
	st := state.New()
	st.EnsurePlayer("p1")
	st.SetCoins("p1", 100)
	u := &UseCase{State: st}

	result, err := u.Buy(context.Background(), "p1", "shotgun", 2)
	if err != nil {
		t.Fatalf("Buy = %v", err)
	}
	if result.Cost != 40 || result.Balance != 60 {
		t.Fatalf("cost/balance = %d/%v, want 40/60", result.Cost, result.Balance)
	}
	if result.Record.GunDurability != 50 {
		t.Fatalf("gun durability = %v, want 30+20", result.Record.GunDurability)
	}
}

func TestBuyRejections(t *testing.T) {
	st := state.New()
	st.EnsurePlayer("p1")
	st.SetCoins("p1", 5)
	u := &UseCase{State: st}

	if _, err := u.Buy(context.Background(), "p1", "bazooka", 1); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("unknown item = %v, want ErrUnknownItem", err)
	}
	if _, err := u.Buy(context.Background(), "p1", "ammo", 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("zero quantity = %v, want ErrInvalidQuantity", err)
	}
	if _, err := u.Buy(context.Background(), "p1", "ammo", 1); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("overdraw = %v, want ErrInsufficientFunds", err)
	}
	rec, _ := st.Player("p1")
	if rec.Ammo != economy.DefaultAmmo {
		t.Fatalf("ammo = %v, want untouched default", rec.Ammo)
	}
}

func TestBuyRejectsOverflowingQuantity(t *testing.T) {
	st := state.New()
	st.EnsurePlayer("p1")
	u := &UseCase{State: st}

	// A quantity large enough to wrap the cost negative would turn the
	// charge into a credit for a broke player.
	if _, err := u.Buy(context.Background(), "p1", "potion", 184467440737095517); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("overflowing quantity = %v, want ErrInvalidQuantity", err)
	}
	if got := st.Coins("p1"); got != 0 {
		t.Fatalf("balance = %v, want 0 untouched", got)
	}
	rec, _ := st.Player("p1")
	if rec.HealingPotions != economy.DefaultHealingPotions {
		t.Fatalf("potions = %v, want untouched default", rec.HealingPotions)
	}
}

func TestInfiniteBalanceAffordsEverything(t *testing.T) {
	st := state.New()
	st.EnsurePlayer("p1")
	st.SetCoins("p1", int64(economy.PosInf))
	u := &UseCase{State: st}

	result, err := u.Buy(context.Background(), "p1", "potion", 3)
	if err != nil {
		t.Fatalf("Buy = %v", err)
	}
	if result.Balance != economy.PosInf {
		t.Fatalf("balance = %v, want ceiling preserved", result.Balance)
	}
	if result.Record.HealingPotions != economy.DefaultHealingPotions+3 {
		t.Fatalf("potions = %v, want %d", result.Record.HealingPotions, economy.DefaultHealingPotions+3)
	}
}

func TestUsePotionHealsAndCaps(t *testing.T) {
	st := state.New()
	rec, _ := st.EnsurePlayer("p1")
	rec.Health = 98
	rec.HealingPotions = 2
	st.UpdatePlayer(rec)
	u := &UseCase{State: st}

	got, err := u.UsePotion(context.Background(), "p1")
	if err != nil {
		t.Fatalf("UsePotion = %v", err)
	}
	if got.Health != 100 {
		t.Fatalf("health = %d, want capped 100", got.Health)
	}
	if got.HealingPotions != 1 {
		t.Fatalf("potions = %v, want 1", got.HealingPotions)
	}

	if _, err := u.UsePotion(context.Background(), "p1"); !errors.Is(err, ErrFullHealth) {
		t.Fatalf("full health = %v, want ErrFullHealth", err)
	}
}

func TestUsePotionRequiresStock(t *testing.T) {
	st := state.New()
	rec, _ := st.EnsurePlayer("p1")
	rec.Health = 50
	rec.HealingPotions = 0
	st.UpdatePlayer(rec)
	u := &UseCase{State: st}

	if _, err := u.UsePotion(context.Background(), "p1"); !errors.Is(err, ErrNoPotions) {
		t.Fatalf("empty stock = %v, want ErrNoPotions", err)
	}
}
