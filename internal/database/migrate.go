package database

import (
	"github.com/FitWiseApp/projeto-monorepo/internal/domain"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.VerificationToken{},
		&domain.PasswordReset{},
		&domain.RefreshToken{},
		&domain.Avatar{},
		&domain.Progress{},
		&domain.QuizResponse{},
	)
}
