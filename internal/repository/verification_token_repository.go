package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/FitWiseApp/projeto-monorepo/internal/domain"
)

var ErrVerificationTokenNotFound = errors.New("verification token not found")

type VerificationTokenRepository interface {
	Create(ctx context.Context, token *domain.VerificationToken) error
	DeleteByUserID(ctx context.Context, userID uint) error
	FindValid(ctx context.Context, userID uint, tokenHash string, now time.Time) (*domain.VerificationToken, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type verificationTokenRepository struct {
	db *gorm.DB
}

func NewVerificationTokenRepository(db *gorm.DB) VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

func (r *verificationTokenRepository) Create(ctx context.Context, token *domain.VerificationToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *verificationTokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.VerificationToken{}).Error
}

func (r *verificationTokenRepository) FindValid(ctx context.Context, userID uint, tokenHash string, now time.Time) (*domain.VerificationToken, error) {
	var token domain.VerificationToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ? AND expires_at >= ?", userID, tokenHash, now).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *verificationTokenRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.VerificationToken{}, id).Error
}

func (r *verificationTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&domain.VerificationToken{})
	return res.RowsAffected, res.Error
}
