package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/FitWiseApp/projeto-monorepo/internal/domain"
)

var ErrPasswordResetNotFound = errors.New("password reset not found")

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *domain.PasswordReset) error
	DeleteByUserID(ctx context.Context, userID uint) error
	FindValid(ctx context.Context, userID uint, tokenHash string, now time.Time) (*domain.PasswordReset, error)
	MarkUsed(ctx context.Context, id uint) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

func (r *passwordResetRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.PasswordReset{}).Error
}

// FindValid matches the reset on owner and digest; unused and unexpired
// are part of the predicate so a consumed token is indistinguishable from
// a missing one.
func (r *passwordResetRepository) FindValid(ctx context.Context, userID uint, tokenHash string, now time.Time) (*domain.PasswordReset, error) {
	var reset domain.PasswordReset
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ? AND used = ? AND expires_at >= ?", userID, tokenHash, false, now).
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPasswordResetNotFound
		}
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&domain.PasswordReset{}).Where("id = ?", id).Update("used", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPasswordResetNotFound
	}
	return nil
}

func (r *passwordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&domain.PasswordReset{})
	return res.RowsAffected, res.Error
}
