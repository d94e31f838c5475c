package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/config"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// DistributionService settles a project: it splits reported revenue across
// the project's investors in proportion to their stakes, writes one payout
// per investment, and transitions the project LIVE → COMPLETED.
//
// The transition is guarded by a conditional UPDATE on the current status, so
// when two reports race exactly one commits its payouts; the loser's
// transaction rolls back and surfaces ErrDistributionConflict.
type DistributionService struct {
	db             *sqlx.DB
	projectRepo    *repository.ProjectRepository
	investmentRepo *repository.InvestmentRepository
	cfg            *config.Config
	broadcaster    Broadcaster // injected after the WS hub is built
}

// NewDistributionService builds a DistributionService.
func NewDistributionService(
	db *sqlx.DB,
	projectRepo *repository.ProjectRepository,
	investmentRepo *repository.InvestmentRepository,
	cfg *config.Config,
) *DistributionService {
	return &DistributionService{
		db:             db,
		projectRepo:    projectRepo,
		investmentRepo: investmentRepo,
		cfg:            cfg,
	}
}

// SetBroadcaster injects the WS hub dependency post-construction.
func (s *DistributionService) SetBroadcaster(b Broadcaster) { s.broadcaster = b }

// ──────────────────────────────────────────────────────────────────────────────
// Distribute
// ──────────────────────────────────────────────────────────────────────────────

// Distribute runs a revenue distribution for a project. Only the project's
// creator may report revenue.
//
// The flow is: validate → snapshot the investment set → compute the split in
// memory → write payouts and complete the project in one transaction. Every
// payout derives from the same snapshot, so investments recorded mid-flight
// are simply excluded rather than half-counted.
func (s *DistributionService) Distribute(
	ctx context.Context,
	projectID uuid.UUID,
	reporterID uuid.UUID,
	totalRevenue decimal.Decimal,
) (*domain.DistributionResult, error) {
	// ── 1. Validate ──────────────────────────────────────────────────────────
	// Zero revenue is a legal report: every payout is zero and the project
	// still completes. Only negative revenue is rejected.
	if totalRevenue.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("distribution_service.Distribute: get project: %w", err)
	}
	if project.CreatorID != reporterID {
		return nil, domain.ErrForbidden
	}
	if !project.IsLive() {
		return nil, domain.ErrProjectCompleted
	}

	// ── 2. Snapshot the investment set ───────────────────────────────────────
	// Bounded by ScanTimeout so a pathological read surfaces as a retryable
	// error; nothing has been written at this point.
	scanCtx, cancel := context.WithTimeout(ctx, s.cfg.Funding.ScanTimeout)
	defer cancel()
	investments, err := s.investmentRepo.GetByProject(scanCtx, projectID)
	if err != nil {
		return nil, fmt.Errorf("distribution_service.Distribute: snapshot: %w", err)
	}

	// ── 3. Compute the split ─────────────────────────────────────────────────
	payoutAmounts, totalInvested, err := domain.SplitRevenue(
		investments,
		totalRevenue,
		int32(s.cfg.Funding.CurrencyPrecision),
		s.cfg.Funding.AllocateRemainder,
	)
	if err != nil {
		return nil, err // ErrNoInvestments surfaces unchanged
	}

	now := time.Now().UTC()
	payouts := make([]*domain.RevenuePayout, len(investments))
	for i, inv := range investments {
		payouts[i] = &domain.RevenuePayout{
			ID:           uuid.New(),
			ProjectID:    projectID,
			InvestorID:   inv.InvestorID,
			InvestmentID: inv.ID,
			Amount:       payoutAmounts[i],
			CreatedAt:    now,
		}
	}

	// ── 4. Atomic settlement transaction ─────────────────────────────────────
	tx, txErr := s.db.BeginTxx(ctx, nil)
	if txErr != nil {
		return nil, fmt.Errorf("distribution_service.Distribute: begin tx: %w", txErr)
	}
	defer func() {
		if txErr != nil {
			_ = tx.Rollback()
		}
	}()

	// Conditional LIVE → COMPLETED transition, claimed FIRST. Two concurrent
	// distributions serialize on the project row lock here: the loser resumes
	// after the winner commits, matches zero rows, and leaves the transaction
	// before writing any payout. Inserting payouts first instead would make the
	// loser trip the investment_id unique index and surface a driver error.
	if txErr = s.projectRepo.CompleteDistribution(ctx, tx, projectID, totalRevenue, now); txErr != nil {
		return nil, txErr // ErrDistributionConflict surfaces unchanged
	}

	if txErr = s.investmentRepo.InsertPayoutsBatch(ctx, tx, payouts); txErr != nil {
		return nil, fmt.Errorf("distribution_service.Distribute: insert payouts: %w", txErr)
	}

	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("distribution_service.Distribute: commit: %w", txErr)
	}

	result := &domain.DistributionResult{
		ProjectID:      projectID,
		TotalRevenue:   totalRevenue,
		TotalInvested:  totalInvested,
		PayoutsCreated: len(payouts),
	}

	log.Printf("[distribution] project %s completed: revenue=%s invested=%s payouts=%d",
		projectID, totalRevenue.StringFixed(2), totalInvested.StringFixed(2), len(payouts))

	// ── 5. Async: WS broadcast ───────────────────────────────────────────────
	if s.broadcaster != nil {
		go s.broadcaster.BroadcastDistribution(result)
	}

	return result, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Query helpers
// ──────────────────────────────────────────────────────────────────────────────

// GetProjectPayouts returns every payout written for a project's
// distribution, oldest first. Empty until the project has been distributed.
func (s *DistributionService) GetProjectPayouts(ctx context.Context, projectID uuid.UUID) ([]*domain.RevenuePayout, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("distribution_service.GetProjectPayouts: get project: %w", err)
	}
	payouts, err := s.investmentRepo.GetPayoutsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("distribution_service.GetProjectPayouts: %w", err)
	}
	return payouts, nil
}
