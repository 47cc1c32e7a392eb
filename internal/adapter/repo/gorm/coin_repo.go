package gormrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moonlight/internal/adapter/repo/gorm/model"
	"moonlight/internal/domain/economy"
)

type CoinRepo struct {
	db *gorm.DB
}

func NewCoinRepo(db *gorm.DB) CoinRepo {
	return CoinRepo{db: db}
}

func (r CoinRepo) LoadAll(ctx context.Context) (map[string]economy.Counter, error) {
	var rows []model.CoinBalance
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]economy.Counter, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = economy.ClampValue(row.Coins)
	}
	return out, nil
}

func (r CoinRepo) Upsert(ctx context.Context, playerID string, coins economy.Counter) error {
	row := model.CoinBalance{PlayerID: playerID, Coins: coins.Int64()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}
