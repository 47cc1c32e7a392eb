package wallet

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"moonlight/internal/app/ports"
	"moonlight/internal/app/state"
	"moonlight/internal/domain/economy"
)

var (
	ErrInvalidRequest    = errors.New("invalid wallet request")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("cannot pay yourself")
)

// Entry is one leaderboard row.
type Entry struct {
	PlayerID string
	Balance  economy.Counter
}

// UseCase covers coin transfers, admin balance edits, and the
// leaderboards. Balances live in State; the repository mirrors writes.
type UseCase struct {
	State *state.State
	Coins ports.CoinRepository
}

// Pay transfers amount between two players. A payer at the ceiling pays
// without losing anything; a payee at the ceiling gains nothing.
func (u *UseCase) Pay(ctx context.Context, payer, payee string, amount int64) (economy.Counter, error) {
	if strings.TrimSpace(payer) == "" || strings.TrimSpace(payee) == "" {
		return 0, ErrInvalidRequest
	}
	if payer == payee {
		return 0, ErrSelfTransfer
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	u.State.EnsurePlayer(payer)
	u.State.EnsurePlayer(payee)

	result, ok := u.State.TransferCoins(payer, payee, amount)
	if !ok {
		return result.PayerBalance, ErrInsufficientFunds
	}
	u.persist(ctx, payer, result.PayerBalance)
	if result.PayeeCredited {
		u.persist(ctx, payee, result.PayeeBalance)
	}
	return result.PayerBalance, nil
}

// Grant adds (or removes, for negative amounts) coins as an admin edit.
func (u *UseCase) Grant(ctx context.Context, playerID string, amount int64) (economy.Counter, error) {
	if strings.TrimSpace(playerID) == "" {
		return 0, ErrInvalidRequest
	}
	if amount == 0 {
		return 0, ErrInvalidAmount
	}
	u.State.EnsurePlayer(playerID)
	next, applied := u.State.AddCoins(playerID, amount)
	if applied {
		u.persist(ctx, playerID, next)
	}
	return next, nil
}

// Set overwrites a balance, clamped into the counter range.
func (u *UseCase) Set(ctx context.Context, playerID string, value int64) (economy.Counter, error) {
	if strings.TrimSpace(playerID) == "" {
		return 0, ErrInvalidRequest
	}
	u.State.EnsurePlayer(playerID)
	next := u.State.SetCoins(playerID, value)
	u.persist(ctx, playerID, next)
	return next, nil
}

// SetAll overwrites every known balance, returning how many were touched.
func (u *UseCase) SetAll(ctx context.Context, value int64) int {
	count := 0
	for playerID := range u.State.AllCoins() {
		next := u.State.SetCoins(playerID, value)
		u.persist(ctx, playerID, next)
		count++
	}
	return count
}

// Top returns the n richest players, ties broken by ID.
func (u *UseCase) Top(n int) []Entry {
	return u.leaderboard(n, func(a, b Entry) bool {
		if a.Balance != b.Balance {
			return a.Balance > b.Balance
		}
		return a.PlayerID < b.PlayerID
	})
}

// Bottom returns the n poorest players, ties broken by ID.
func (u *UseCase) Bottom(n int) []Entry {
	return u.leaderboard(n, func(a, b Entry) bool {
		if a.Balance != b.Balance {
			return a.Balance < b.Balance
		}
		return a.PlayerID < b.PlayerID
	})
}

func (u *UseCase) leaderboard(n int, less func(a, b Entry) bool) []Entry {
	balances := u.State.AllCoins()
	entries := make([]Entry, 0, len(balances))
	for playerID, balance := range balances {
		entries = append(entries, Entry{PlayerID: playerID, Balance: balance})
	}
	sort.Slice(entries, func(i, j int) bool { return less(entries[i], entries[j]) })
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func (u *UseCase) persist(ctx context.Context, playerID string, balance economy.Counter) {
	if u.Coins == nil {
		return
	}
	if err := u.Coins.Upsert(ctx, playerID, balance); err != nil {
		hlog.Errorf("persist coins %s: %v", playerID, err)
	}
}
