package service

import (
	"context"
	"errors"
	"time"

	"github.com/FitWiseApp/projeto-monorepo/internal/domain"
	"github.com/FitWiseApp/projeto-monorepo/internal/repository"
	"github.com/FitWiseApp/projeto-monorepo/internal/security"
)

// TokenPair is the credential set issued on login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService issues and validates the JWT pair. Refresh tokens are
// double-checked: the JWT signature proves authenticity, the stored digest
// proves the session was not revoked.
type TokenService struct {
	jwt        *security.JWTManager
	refreshes  repository.RefreshTokenRepository
	pepper     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(
	jwt *security.JWTManager,
	refreshes repository.RefreshTokenRepository,
	pepper string,
	accessTTL, refreshTTL time.Duration,
) *TokenService {
	return &TokenService{
		jwt:        jwt,
		refreshes:  refreshes,
		pepper:     pepper,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) IssueAccessToken(user *domain.User) (string, error) {
	return s.jwt.SignAccessToken(user.ID, user.Email, user.Role, s.accessTTL)
}

// IssuePair mints both tokens and persists the refresh digest as a session
// record.
func (s *TokenService) IssuePair(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, err := s.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.SignRefreshToken(user.ID, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	record := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: security.HashRefreshToken(refresh, s.pepper),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.refreshes.Create(ctx, record); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidateRefresh returns the user ID behind a refresh token, or
// ErrInvalidRefreshToken when either the JWT or the session record fails.
func (s *TokenService) ValidateRefresh(ctx context.Context, raw string) (uint, error) {
	claims, err := s.jwt.ParseRefreshToken(raw)
	if err != nil {
		return 0, ErrInvalidRefreshToken
	}
	userID, err := security.SubjectUserID(claims.Subject)
	if err != nil {
		return 0, ErrInvalidRefreshToken
	}
	record, err := s.refreshes.FindValidByHash(ctx, security.HashRefreshToken(raw, s.pepper), time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return 0, ErrInvalidRefreshToken
		}
		return 0, err
	}
	if record.UserID != userID {
		return 0, ErrInvalidRefreshToken
	}
	return userID, nil
}

// RevokeRefresh removes the session record for a raw refresh token. The JWT
// is not validated first; revoking garbage is a no-op.
func (s *TokenService) RevokeRefresh(ctx context.Context, raw string) error {
	return s.refreshes.DeleteByHash(ctx, security.HashRefreshToken(raw, s.pepper))
}

func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uint) error {
	return s.refreshes.DeleteByUserID(ctx, userID)
}

func (s *TokenService) ParseAccessToken(raw string) (*security.AccessClaims, error) {
	return s.jwt.ParseAccessToken(raw)
}
