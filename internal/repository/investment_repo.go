package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// InvestmentRepository handles all database operations for Investments and
// RevenuePayouts. Both tables are append-only: rows are inserted once and
// never updated.
type InvestmentRepository struct {
	db *sqlx.DB
}

// NewInvestmentRepository creates a new InvestmentRepository.
func NewInvestmentRepository(db *sqlx.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Create appends a new investment record. Exactly one durable write; no
// cached totals are touched anywhere — funding figures are always re-derived
// from this table.
func (r *InvestmentRepository) Create(ctx context.Context, inv *domain.Investment) error {
	query := `
		INSERT INTO investments
			(id, project_id, investor_id, amount, status, created_at)
		VALUES
			(:id, :project_id, :investor_id, :amount, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
		return fmt.Errorf("investment_repo.Create: %w", err)
	}
	return nil
}

// GetByID fetches an investment by its primary key.
func (r *InvestmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	var inv domain.Investment
	err := r.db.GetContext(ctx, &inv, `SELECT * FROM investments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvestmentNotFound
		}
		return nil, fmt.Errorf("investment_repo.GetByID: %w", err)
	}
	return &inv, nil
}

// GetByProject returns the COMPLETE investment set for a project in insertion
// order. Deliberately unpaginated: funding aggregation and revenue
// distribution must fold over every investment, and a silent LIMIT here would
// corrupt both.
func (r *InvestmentRepository) GetByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Investment, error) {
	var investments []*domain.Investment
	err := r.db.SelectContext(ctx, &investments,
		`SELECT * FROM investments WHERE project_id = $1 ORDER BY created_at ASC, id ASC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("investment_repo.GetByProject: %w", err)
	}
	return investments, nil
}

// GetByInvestor returns an investor's investment history, paginated.
func (r *InvestmentRepository) GetByInvestor(ctx context.Context, investorID uuid.UUID, limit, offset int) ([]*domain.Investment, error) {
	var investments []*domain.Investment
	err := r.db.SelectContext(ctx, &investments,
		`SELECT * FROM investments WHERE investor_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		investorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("investment_repo.GetByInvestor: %w", err)
	}
	return investments, nil
}

// InsertPayoutsBatch appends one payout row per investment inside an existing
// transaction. The caller commits the batch together with the project's
// LIVE→COMPLETED transition so a partial payout set is never observable.
func (r *InvestmentRepository) InsertPayoutsBatch(ctx context.Context, tx *sqlx.Tx, payouts []*domain.RevenuePayout) error {
	query := `
		INSERT INTO revenue_payouts
			(id, project_id, investor_id, investment_id, amount, created_at)
		VALUES
			(:id, :project_id, :investor_id, :investment_id, :amount, :created_at)`
	for _, p := range payouts {
		if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
			// A duplicate investment_id means another distribution already
			// wrote this payout set.
			if isPgUniqueViolation(err, "revenue_payouts_investment_id_key") {
				return domain.ErrDistributionConflict
			}
			return fmt.Errorf("investment_repo.InsertPayoutsBatch (investment %s): %w", p.InvestmentID, err)
		}
	}
	return nil
}

// GetPayoutsByProject returns every payout generated for a project.
func (r *InvestmentRepository) GetPayoutsByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.RevenuePayout, error) {
	var payouts []*domain.RevenuePayout
	err := r.db.SelectContext(ctx, &payouts,
		`SELECT * FROM revenue_payouts WHERE project_id = $1 ORDER BY created_at ASC, id ASC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("investment_repo.GetPayoutsByProject: %w", err)
	}
	return payouts, nil
}

// GetPayoutsByInvestor returns payouts received by an investor, paginated.
func (r *InvestmentRepository) GetPayoutsByInvestor(ctx context.Context, investorID uuid.UUID, limit, offset int) ([]*domain.RevenuePayout, error) {
	var payouts []*domain.RevenuePayout
	err := r.db.SelectContext(ctx, &payouts,
		`SELECT * FROM revenue_payouts WHERE investor_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		investorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("investment_repo.GetPayoutsByInvestor: %w", err)
	}
	return payouts, nil
}
