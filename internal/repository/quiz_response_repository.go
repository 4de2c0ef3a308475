package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/FitWiseApp/projeto-monorepo/internal/domain"
)

type QuizResponseRepository interface {
	ExistsForUser(ctx context.Context, userID uint) (bool, error)
}

type quizResponseRepository struct {
	db *gorm.DB
}

func NewQuizResponseRepository(db *gorm.DB) QuizResponseRepository {
	return &quizResponseRepository{db: db}
}

func (r *quizResponseRepository) ExistsForUser(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.QuizResponse{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
