package service

import (
	"context"

	"github.com/FitWiseApp/projeto-monorepo/internal/repository"
)

// GamificationService owns the game-state side of the product. From the
// auth flows it only exposes the verified hook that bootstraps a fresh
// avatar and progress record.
type GamificationService struct {
	gamification repository.GamificationRepository
}

var _ UserVerifiedHandler = (*GamificationService)(nil)

func NewGamificationService(gamification repository.GamificationRepository) *GamificationService {
	return &GamificationService{gamification: gamification}
}

func (s *GamificationService) OnUserVerified(ctx context.Context, userID uint) error {
	return s.gamification.InitializeForUser(ctx, userID)
}
