package service

import (
	"context"
	"fmt"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/repository"
	"github.com/google/uuid"
)

// FundingService derives the aggregate funding state of a project from its
// investment ledger. Figures are recomputed on every call; nothing here is
// cached or persisted, so a funding total can never drift from the
// investments it is derived from.
type FundingService struct {
	projectRepo    *repository.ProjectRepository
	investmentRepo *repository.InvestmentRepository
}

// NewFundingService builds a FundingService.
func NewFundingService(projectRepo *repository.ProjectRepository, investmentRepo *repository.InvestmentRepository) *FundingService {
	return &FundingService{projectRepo: projectRepo, investmentRepo: investmentRepo}
}

// Aggregate folds over the full investment set of the project and returns its
// exact funding summary. A missing project surfaces as ErrProjectNotFound.
func (s *FundingService) Aggregate(ctx context.Context, projectID uuid.UUID) (domain.FundingSummary, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return domain.FundingSummary{}, err
	}

	investments, err := s.investmentRepo.GetByProject(ctx, projectID)
	if err != nil {
		return domain.FundingSummary{}, fmt.Errorf("funding_service.Aggregate: %w", err)
	}

	return domain.SummarizeFunding(project, investments), nil
}
