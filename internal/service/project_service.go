package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/repository"
	"github.com/google/uuid"
)

// ProjectService manages crowdfunding project CRUD and the enriched project
// views served by the public listing and detail endpoints.
type ProjectService struct {
	projectRepo    *repository.ProjectRepository
	creatorRepo    *repository.CreatorRepository
	userRepo       *repository.UserRepository
	fundingService *FundingService
}

// NewProjectService creates a ProjectService.
func NewProjectService(
	projectRepo *repository.ProjectRepository,
	creatorRepo *repository.CreatorRepository,
	userRepo *repository.UserRepository,
	fundingService *FundingService,
) *ProjectService {
	return &ProjectService{
		projectRepo:    projectRepo,
		creatorRepo:    creatorRepo,
		userRepo:       userRepo,
		fundingService: fundingService,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Create opens a new LIVE project for the creator. Goal must be a positive
// amount; min_investment and projected_roi default to zero when omitted.
func (s *ProjectService) Create(ctx context.Context, creatorID uuid.UUID, req domain.CreateProjectRequest) (*domain.Project, error) {
	if !req.GoalAmount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if req.MinInvestment.IsNegative() || req.ProjectedROI.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	project := &domain.Project{
		ID:            uuid.New(),
		CreatorID:     creatorID,
		Title:         req.Title,
		Description:   req.Description,
		GoalAmount:    req.GoalAmount,
		MinInvestment: req.MinInvestment,
		ProjectedROI:  req.ProjectedROI,
		Status:        domain.ProjectStatusLive,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("project_service.Create: %w", err)
	}

	// A creator can open a project before filling out a profile; back-fill a
	// minimal one so the public listing always has a name to show.
	if _, err := s.creatorRepo.GetCreatorByUserID(ctx, creatorID); domain.IsNotFound(err) {
		if perr := s.creatorRepo.CreateCreator(ctx, &domain.CreatorProfile{
			ID:          uuid.New(),
			UserID:      creatorID,
			DisplayName: s.defaultDisplayName(ctx, creatorID),
		}); perr != nil && !domain.IsConflict(perr) {
			log.Printf("[project] auto-create profile for %s failed: %v", creatorID, perr)
		}
	}
	return project, nil
}

// defaultDisplayName derives a placeholder display name from the creator's
// email local part, falling back to a generic label.
func (s *ProjectService) defaultDisplayName(ctx context.Context, userID uuid.UUID) string {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "Creator"
	}
	if at := strings.IndexByte(user.Email, '@'); at > 0 {
		return user.Email[:at]
	}
	return user.Email
}

// ──────────────────────────────────────────────────────────────────────────────
// Reads
// ──────────────────────────────────────────────────────────────────────────────

// Get returns a single project enriched with creator info and live funding
// figures.
func (s *ProjectService) Get(ctx context.Context, projectID uuid.UUID) (*domain.ProjectView, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("project_service.Get: %w", err)
	}
	return s.enrich(ctx, project)
}

// ListPublic returns a page of projects with funding figures for the public
// catalogue, plus the unfiltered total for pagination.
func (s *ProjectService) ListPublic(ctx context.Context, limit, offset int, status, sortBy string) ([]*domain.ProjectView, int, error) {
	projects, total, err := s.projectRepo.List(ctx, limit, offset, status, sortBy)
	if err != nil {
		return nil, 0, fmt.Errorf("project_service.ListPublic: %w", err)
	}

	views := make([]*domain.ProjectView, 0, len(projects))
	for _, p := range projects {
		view, err := s.enrich(ctx, p)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// ListMine returns every project owned by the creator, enriched.
func (s *ProjectService) ListMine(ctx context.Context, creatorID uuid.UUID) ([]*domain.ProjectView, error) {
	projects, err := s.projectRepo.GetByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("project_service.ListMine: %w", err)
	}

	views := make([]*domain.ProjectView, 0, len(projects))
	for _, p := range projects {
		view, err := s.enrich(ctx, p)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// enrich attaches the derived funding summary and the creator's public
// identity to a project. A missing creator profile leaves the name fields
// blank rather than failing the read.
func (s *ProjectService) enrich(ctx context.Context, project *domain.Project) (*domain.ProjectView, error) {
	summary, err := s.fundingService.Aggregate(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("project_service.enrich %s: %w", project.ID, err)
	}

	view := project.WithFunding(summary)
	if profile, err := s.creatorRepo.GetCreatorByUserID(ctx, project.CreatorID); err == nil {
		view.CreatorName = profile.DisplayName
		view.CreatorAvatar = profile.AvatarURL
	}
	return &view, nil
}
