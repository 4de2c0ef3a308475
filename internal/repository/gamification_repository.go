package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FitWiseApp/projeto-monorepo/internal/domain"
)

type GamificationRepository interface {
	InitializeForUser(ctx context.Context, userID uint) error
}

type gamificationRepository struct {
	db *gorm.DB
}

func NewGamificationRepository(db *gorm.DB) GamificationRepository {
	return &gamificationRepository{db: db}
}

// InitializeForUser creates the starting avatar and progress rows in one
// transaction. Conflicts are ignored so a replayed verification does not
// reset accumulated progress.
func (r *gamificationRepository) InitializeForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		avatar := domain.Avatar{
			UserID:        userID,
			Appearance:    "{}",
			UnlockedItems: "[]",
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&avatar).Error; err != nil {
			return err
		}
		progress := domain.Progress{
			UserID:     userID,
			XPTotal:    0,
			Level:      1,
			Points:     0,
			StreakDays: 0,
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&progress).Error
	})
}
