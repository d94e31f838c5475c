package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/config"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/repository"
	"github.com/google/uuid"
)

// ──────────────────────────────────────────────────────────────────────────────
// Request types
// ──────────────────────────────────────────────────────────────────────────────

// CreateCreatorRequest contains the fields for a new creator profile.
type CreateCreatorRequest struct {
	DisplayName  string `json:"display_name"  binding:"required,min=2,max=100"`
	Bio          string `json:"bio"`
	PrimaryGenre string `json:"primary_genre"`
	Region       string `json:"region"`
	AvatarURL    string `json:"avatar_url"`
}

// CreateBrandRequest contains the fields for a new brand profile.
type CreateBrandRequest struct {
	BrandName  string `json:"brand_name" binding:"required,min=2,max=100"`
	Industry   string `json:"industry"`
	Region     string `json:"region"`
	BudgetBand string `json:"budget_band"`
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatorService
// ──────────────────────────────────────────────────────────────────────────────

// CreatorService manages creator and brand profiles, the discovery search,
// and the synthetic channel analytics block. Analytics are generated on
// first read and periodically regenerated by the scheduler; they are
// plausible numbers, not measurements.
type CreatorService struct {
	creatorRepo *repository.CreatorRepository
	cfg         *config.Config
}

// NewCreatorService creates a CreatorService.
func NewCreatorService(creatorRepo *repository.CreatorRepository, cfg *config.Config) *CreatorService {
	return &CreatorService{creatorRepo: creatorRepo, cfg: cfg}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creator profiles
// ──────────────────────────────────────────────────────────────────────────────

// CreateProfile creates the creator profile for a user. One profile per
// user; a second create returns ErrProfileExists.
func (s *CreatorService) CreateProfile(ctx context.Context, userID uuid.UUID, req CreateCreatorRequest) (*domain.CreatorProfile, error) {
	now := time.Now().UTC()
	profile := &domain.CreatorProfile{
		ID:           uuid.New(),
		UserID:       userID,
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
		PrimaryGenre: req.PrimaryGenre,
		Region:       req.Region,
		AvatarURL:    req.AvatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.creatorRepo.CreateCreator(ctx, profile); err != nil {
		return nil, err // ErrProfileExists surfaces unchanged
	}
	return profile, nil
}

// GetProfile returns a creator profile by profile ID, generating the
// analytics block on first read.
func (s *CreatorService) GetProfile(ctx context.Context, creatorID uuid.UUID) (*domain.CreatorProfile, error) {
	profile, err := s.creatorRepo.GetCreatorByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("creator_service.GetProfile: %w", err)
	}
	return s.ensureAnalytics(ctx, profile)
}

// GetMyProfile returns the caller's creator profile.
func (s *CreatorService) GetMyProfile(ctx context.Context, userID uuid.UUID) (*domain.CreatorProfile, error) {
	profile, err := s.creatorRepo.GetCreatorByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("creator_service.GetMyProfile: %w", err)
	}
	return s.ensureAnalytics(ctx, profile)
}

// UpdateProfile applies a partial update to the caller's creator profile.
func (s *CreatorService) UpdateProfile(ctx context.Context, userID uuid.UUID, upd domain.CreatorUpdate) (*domain.CreatorProfile, error) {
	if err := s.creatorRepo.UpdateCreatorProfile(ctx, userID, upd); err != nil {
		return nil, fmt.Errorf("creator_service.UpdateProfile: %w", err)
	}
	profile, err := s.creatorRepo.GetCreatorByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("creator_service.UpdateProfile: reload: %w", err)
	}
	return profile, nil
}

// Discover runs the creator discovery search with genre/region/text filters.
func (s *CreatorService) Discover(ctx context.Context, q domain.CreatorSearch) ([]*domain.CreatorProfile, error) {
	creators, err := s.creatorRepo.SearchCreators(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("creator_service.Discover: %w", err)
	}
	return creators, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Brand profiles
// ──────────────────────────────────────────────────────────────────────────────

// CreateBrand creates the brand profile for a user.
func (s *CreatorService) CreateBrand(ctx context.Context, userID uuid.UUID, req CreateBrandRequest) (*domain.BrandProfile, error) {
	now := time.Now().UTC()
	brand := &domain.BrandProfile{
		ID:         uuid.New(),
		UserID:     userID,
		BrandName:  req.BrandName,
		Industry:   req.Industry,
		Region:     req.Region,
		BudgetBand: req.BudgetBand,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.creatorRepo.CreateBrand(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// GetMyBrand returns the caller's brand profile.
func (s *CreatorService) GetMyBrand(ctx context.Context, userID uuid.UUID) (*domain.BrandProfile, error) {
	brand, err := s.creatorRepo.GetBrandByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("creator_service.GetMyBrand: %w", err)
	}
	return brand, nil
}

// UpdateBrand applies a partial update to the caller's brand profile.
func (s *CreatorService) UpdateBrand(ctx context.Context, userID uuid.UUID, upd domain.BrandUpdate) (*domain.BrandProfile, error) {
	if err := s.creatorRepo.UpdateBrandProfile(ctx, userID, upd); err != nil {
		return nil, fmt.Errorf("creator_service.UpdateBrand: %w", err)
	}
	brand, err := s.creatorRepo.GetBrandByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("creator_service.UpdateBrand: reload: %w", err)
	}
	return brand, nil
}

// ListBrands returns a page of brand profiles.
func (s *CreatorService) ListBrands(ctx context.Context, limit, offset int) ([]*domain.BrandProfile, error) {
	brands, err := s.creatorRepo.ListBrands(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("creator_service.ListBrands: %w", err)
	}
	return brands, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Synthetic analytics
// ──────────────────────────────────────────────────────────────────────────────

// ensureAnalytics generates the analytics block on first read. A failed write
// does not fail the read: the in-memory profile already carries the numbers.
func (s *CreatorService) ensureAnalytics(ctx context.Context, profile *domain.CreatorProfile) (*domain.CreatorProfile, error) {
	if profile.HasAnalytics() {
		return profile, nil
	}
	s.generateAnalytics(profile)
	if err := s.creatorRepo.UpdateCreatorAnalytics(ctx, profile); err != nil {
		log.Printf("[analytics] WARN: persist analytics for creator %s: %v", profile.ID, err)
	}
	return profile, nil
}

// RefreshStale regenerates analytics for creators whose block is older than
// Analytics.StaleAfter. Called by the scheduler; returns the number of
// profiles refreshed.
func (s *CreatorService) RefreshStale(ctx context.Context, batchSize int) (int, error) {
	cutoff := time.Now().UTC().Add(-s.cfg.Analytics.StaleAfter)
	stale, err := s.creatorRepo.GetStaleAnalytics(ctx, cutoff, batchSize)
	if err != nil {
		return 0, fmt.Errorf("creator_service.RefreshStale: fetch: %w", err)
	}

	refreshed := 0
	for _, profile := range stale {
		s.generateAnalytics(profile)
		if err := s.creatorRepo.UpdateCreatorAnalytics(ctx, profile); err != nil {
			log.Printf("[analytics] ERROR refreshing creator %s: %v", profile.ID, err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

// generateAnalytics fills the profile's analytics block with plausible
// synthetic channel numbers.
func (s *CreatorService) generateAnalytics(profile *domain.CreatorProfile) {
	trends := []domain.PerformanceTrend{domain.TrendGrowing, domain.TrendStable, domain.TrendDeclining}

	videos := 20 + rand.Intn(480)
	avgViews := 5_000 + rand.Int63n(495_000)

	profile.TotalVideos = videos
	profile.TotalViews = int64(videos) * avgViews
	profile.Subscribers = 10_000 + rand.Int63n(4_990_000)
	profile.AvgViewsPerVideo = float64(avgViews)
	profile.EngagementRate = 1.0 + rand.Float64()*9.0         // percent
	profile.SubscriberGrowthRate = -2.0 + rand.Float64()*12.0 // percent/month
	profile.PostingFrequency = 0.5 + rand.Float64()*6.5       // videos/week
	profile.TopPerformingGenre = profile.PrimaryGenre
	profile.PerformanceTrend = trends[rand.Intn(len(trends))]
	profile.AudienceDemographics = domain.JSONMap{
		"age_13_17": rand.Intn(15),
		"age_18_24": 20 + rand.Intn(20),
		"age_25_34": 20 + rand.Intn(20),
		"age_35_44": 10 + rand.Intn(15),
		"age_45_up": rand.Intn(10),
		"gender_split": map[string]int{
			"male":   40 + rand.Intn(20),
			"female": 35 + rand.Intn(20),
			"other":  rand.Intn(5),
		},
	}
	now := time.Now().UTC()
	profile.LastAnalyticsUpdate = &now
	profile.UpdatedAt = now
}
