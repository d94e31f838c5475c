package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/config"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/repository"
	"github.com/google/uuid"
)

// ──────────────────────────────────────────────────────────────────────────────
// Interfaces injected into services to avoid import cycles
// ──────────────────────────────────────────────────────────────────────────────

// Broadcaster is the minimal interface the ledger services need from the WS
// hub. Implemented by ws.Hub.
type Broadcaster interface {
	BroadcastFundingUpdate(projectID uuid.UUID, summary domain.FundingSummary)
	BroadcastDistribution(result *domain.DistributionResult)
}

// ──────────────────────────────────────────────────────────────────────────────
// InvestmentService
// ──────────────────────────────────────────────────────────────────────────────

// InvestmentService records investments into the append-only ledger.
// Recording is a single insert: no balances are debited and no project row is
// touched, so two concurrent investments never contend with each other.
type InvestmentService struct {
	investmentRepo *repository.InvestmentRepository
	projectRepo    *repository.ProjectRepository
	fundingService *FundingService
	cfg            *config.Config
	broadcaster    Broadcaster // injected after the WS hub is built
}

// NewInvestmentService creates an InvestmentService.
func NewInvestmentService(
	investmentRepo *repository.InvestmentRepository,
	projectRepo *repository.ProjectRepository,
	fundingService *FundingService,
	cfg *config.Config,
) *InvestmentService {
	return &InvestmentService{
		investmentRepo: investmentRepo,
		projectRepo:    projectRepo,
		fundingService: fundingService,
		cfg:            cfg,
	}
}

// SetBroadcaster injects the WS hub dependency post-construction.
func (s *InvestmentService) SetBroadcaster(b Broadcaster) { s.broadcaster = b }

// ──────────────────────────────────────────────────────────────────────────────
// Record
// ──────────────────────────────────────────────────────────────────────────────

// Record validates the request against the target project and appends an
// investment to the ledger. Amounts must be strictly positive; the two
// permissiveness gates (minimum-investment enforcement and investing into
// completed projects) are config-controlled.
//
// Capital recorded after a project completed never receives a payout, since
// payouts are computed from the investment snapshot taken at distribution
// time.
func (s *InvestmentService) Record(ctx context.Context, req domain.RecordInvestmentRequest) (*domain.Investment, error) {
	// ── 1. Input validation ──────────────────────────────────────────────────
	if !req.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("investment_service.Record: get project: %w", err)
	}
	if !project.IsLive() && !s.cfg.Funding.AllowInvestAfterCompletion {
		return nil, domain.ErrProjectCompleted
	}
	if s.cfg.Funding.EnforceMinInvestment && req.Amount.LessThan(project.MinInvestment) {
		return nil, domain.ErrBelowMinInvestment
	}

	// ── 2. Append to the ledger ──────────────────────────────────────────────
	inv := &domain.Investment{
		ID:         uuid.New(),
		ProjectID:  req.ProjectID,
		InvestorID: req.InvestorID,
		Amount:     req.Amount,
		Status:     domain.InvestmentStatusSuccess,
		CreatedAt:  time.Now().UTC(),
	}
	if err = s.investmentRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("investment_service.Record: create: %w", err)
	}

	// ── 3. Async: WS funding broadcast ───────────────────────────────────────
	go s.postInvestAsync(project)

	return inv, nil
}

// postInvestAsync pushes the refreshed funding summary to WS subscribers.
// Runs in a goroutine; errors are intentionally swallowed (monitoring via logs).
func (s *InvestmentService) postInvestAsync(project *domain.Project) {
	if s.broadcaster == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	summary, err := s.fundingService.Aggregate(ctx, project.ID)
	if err == nil {
		s.broadcaster.BroadcastFundingUpdate(project.ID, summary)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Query helpers
// ──────────────────────────────────────────────────────────────────────────────

// GetMyInvestments returns paginated investments for an investor.
func (s *InvestmentService) GetMyInvestments(ctx context.Context, investorID uuid.UUID, limit, offset int) ([]*domain.Investment, error) {
	investments, err := s.investmentRepo.GetByInvestor(ctx, investorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("investment_service.GetMyInvestments: %w", err)
	}
	return investments, nil
}

// GetMyPayouts returns paginated revenue payouts for an investor.
func (s *InvestmentService) GetMyPayouts(ctx context.Context, investorID uuid.UUID, limit, offset int) ([]*domain.RevenuePayout, error) {
	payouts, err := s.investmentRepo.GetPayoutsByInvestor(ctx, investorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("investment_service.GetMyPayouts: %w", err)
	}
	return payouts, nil
}

// GetProjectInvestments returns the full investment set of a project,
// oldest first.
func (s *InvestmentService) GetProjectInvestments(ctx context.Context, projectID uuid.UUID) ([]*domain.Investment, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("investment_service.GetProjectInvestments: get project: %w", err)
	}
	investments, err := s.investmentRepo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("investment_service.GetProjectInvestments: %w", err)
	}
	return investments, nil
}
