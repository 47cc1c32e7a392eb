package model

import "time"

// Player mirrors one economy.PlayerRecord row. Counter fields are stored
// as raw int64 and clamped on load.
type Player struct {
	PlayerID       string `gorm:"primaryKey;size:64"`
	Health         int32
	GunDurability  int64
	Ammo           int64
	CampDurability int64
	HealingPotions int64
	UpdatedAt      time.Time
}

func (Player) TableName() string { return "players" }

// CoinBalance has a lifecycle independent of Player.
type CoinBalance struct {
	PlayerID  string `gorm:"primaryKey;size:64"`
	Coins     int64
	UpdatedAt time.Time
}

func (CoinBalance) TableName() string { return "coin_balances" }
