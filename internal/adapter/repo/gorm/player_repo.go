package gormrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moonlight/internal/adapter/repo/gorm/model"
	"moonlight/internal/domain/economy"
)

type PlayerRepo struct {
	db *gorm.DB
}

func NewPlayerRepo(db *gorm.DB) PlayerRepo {
	return PlayerRepo{db: db}
}

func (r PlayerRepo) LoadAll(ctx context.Context) ([]economy.PlayerRecord, error) {
	var rows []model.Player
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]economy.PlayerRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, economy.PlayerRecord{
			ID:             row.PlayerID,
			Health:         int(row.Health),
			GunDurability:  economy.ClampValue(row.GunDurability),
			Ammo:           economy.ClampValue(row.Ammo),
			CampDurability: economy.ClampValue(row.CampDurability),
			HealingPotions: economy.ClampValue(row.HealingPotions),
		})
	}
	return out, nil
}

func (r PlayerRepo) Upsert(ctx context.Context, record economy.PlayerRecord) error {
	row := model.Player{
		PlayerID:       record.ID,
		Health:         int32(record.Health),
		GunDurability:  record.GunDurability.Int64(),
		Ammo:           record.Ammo.Int64(),
		CampDurability: record.CampDurability.Int64(),
		HealingPotions: record.HealingPotions.Int64(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}
