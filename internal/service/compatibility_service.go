package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/repository"
	"github.com/google/uuid"
)

// CompatibilityService computes and serves mock creator↔target affinity
// scores. Like the analytics block on creator profiles, scores are
// synthesized rather than derived from real platform data.
type CompatibilityService struct {
	compatibilityRepo *repository.CompatibilityRepository
}

// NewCompatibilityService creates a CompatibilityService.
func NewCompatibilityService(compatibilityRepo *repository.CompatibilityRepository) *CompatibilityService {
	return &CompatibilityService{compatibilityRepo: compatibilityRepo}
}

// Recalculate synthesizes a fresh score for the creator against the target
// and persists it. The previous score stays in the table; reads always pick
// the most recent row.
func (s *CompatibilityService) Recalculate(
	ctx context.Context,
	creatorID uuid.UUID,
	req domain.RecalculateCompatibilityRequest,
) (*domain.CompatibilityScore, error) {
	targetType := domain.CompatibilityTargetType(req.TargetType)
	switch targetType {
	case domain.CompatibilityTargetCreator, domain.CompatibilityTargetBrand:
	default:
		return nil, domain.ErrInvalidTargetType
	}

	score := &domain.CompatibilityScore{
		ID:           uuid.New(),
		CreatorID:    creatorID,
		TargetID:     req.TargetID,
		TargetType:   targetType,
		CalculatedAt: time.Now().UTC(),
	}
	score.Score, score.Breakdown = synthesizeCompatibility()

	if err := s.compatibilityRepo.Create(ctx, score); err != nil {
		return nil, fmt.Errorf("compatibility_service.Recalculate: %w", err)
	}
	return score, nil
}

// GetForCreator returns the creator's latest computed score.
func (s *CompatibilityService) GetForCreator(ctx context.Context, creatorID uuid.UUID) (*domain.CompatibilityScore, error) {
	score, err := s.compatibilityRepo.GetLatestByCreator(ctx, creatorID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("compatibility_service.GetForCreator: %w", err)
	}
	return score, nil
}

// synthesizeCompatibility produces an overall score in [0.50, 1.00] rounded
// to two decimals, with a per-dimension breakdown of integers in [50, 100].
func synthesizeCompatibility() (float64, domain.JSONMap) {
	score := float64(50+rand.Intn(51)) / 100
	breakdown := domain.JSONMap{
		"genre_match":      50 + rand.Intn(51),
		"audience_overlap": 50 + rand.Intn(51),
		"budget_fit":       50 + rand.Intn(51),
	}
	return score, breakdown
}
