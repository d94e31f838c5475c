package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Types & constants
// ──────────────────────────────────────────────────────────────────────────────

// InvestmentStatus represents the state of a recorded investment. The ledger
// only ever records settled capital, so SUCCESS is the sole status.
type InvestmentStatus string

const (
	InvestmentStatusSuccess InvestmentStatus = "SUCCESS"
)

// ──────────────────────────────────────────────────────────────────────────────
// Investment
// ──────────────────────────────────────────────────────────────────────────────

// Investment is an immutable capital commitment by an investor to a project.
// Amount is fixed at creation and never mutated afterwards; every downstream
// funding figure and payout share derives from this immutability.
type Investment struct {
	ID         uuid.UUID        `json:"id"          db:"id"`
	ProjectID  uuid.UUID        `json:"project_id"  db:"project_id"`
	InvestorID uuid.UUID        `json:"investor_id" db:"investor_id"`
	Amount     decimal.Decimal  `json:"amount"      db:"amount"`
	Status     InvestmentStatus `json:"status"      db:"status"`
	CreatedAt  time.Time        `json:"created_at"  db:"created_at"`
}

// ──────────────────────────────────────────────────────────────────────────────
// RevenuePayout
// ──────────────────────────────────────────────────────────────────────────────

// RevenuePayout is an immutable, proportional distribution of reported revenue
// to one investment. Exactly one payout exists per investment per distribution,
// and a project is distributed at most once.
type RevenuePayout struct {
	ID           uuid.UUID       `json:"id"            db:"id"`
	ProjectID    uuid.UUID       `json:"project_id"    db:"project_id"`
	InvestorID   uuid.UUID       `json:"investor_id"   db:"investor_id"`
	InvestmentID uuid.UUID       `json:"investment_id" db:"investment_id"`
	Amount       decimal.Decimal `json:"amount"        db:"amount"`
	CreatedAt    time.Time       `json:"created_at"    db:"created_at"`
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordInvestmentRequest — value object used by InvestmentService
// ──────────────────────────────────────────────────────────────────────────────

// RecordInvestmentRequest carries the validated inputs for recording an
// investment.
type RecordInvestmentRequest struct {
	ProjectID  uuid.UUID
	InvestorID uuid.UUID
	Amount     decimal.Decimal
}

// ──────────────────────────────────────────────────────────────────────────────
// DistributionResult — value object returned by the distributor
// ──────────────────────────────────────────────────────────────────────────────

// DistributionResult echoes the distribution inputs back to the caller along
// with the number of payout records created.
type DistributionResult struct {
	ProjectID      uuid.UUID       `json:"project_id"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	PayoutsCreated int             `json:"payouts_created"`
}

// ──────────────────────────────────────────────────────────────────────────────
// Payout split math — pure, no I/O
// ──────────────────────────────────────────────────────────────────────────────

// SumAmounts returns the exact decimal sum of the investment amounts.
func SumAmounts(investments []*Investment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(inv.Amount)
	}
	return total
}

// SplitRevenue partitions totalRevenue among the investments in exact
// proportion to their amounts.
//
//	share_i  = amount_i / totalInvested
//	payout_i = totalRevenue × share_i, rounded down to `precision` places
//
// Rounding down leaves a residual of at most one minor unit per investment.
// When allocateRemainder is true the residual (totalRevenue − Σpayout) is
// added to the largest investment's payout so the payout amounts sum exactly
// to the reported revenue; when false the residual is left undistributed,
// matching systems that accept sub-unit drift.
//
// The returned slice is index-aligned with investments. totalInvested is
// returned for the caller's result echo. ErrNoInvestments is returned when
// the investment set is empty or sums to zero.
func SplitRevenue(investments []*Investment, totalRevenue decimal.Decimal, precision int32, allocateRemainder bool) ([]decimal.Decimal, decimal.Decimal, error) {
	totalInvested := SumAmounts(investments)
	if len(investments) == 0 || !totalInvested.IsPositive() {
		return nil, decimal.Zero, ErrNoInvestments
	}

	payouts := make([]decimal.Decimal, len(investments))
	distributed := decimal.Zero
	largest := 0
	for i, inv := range investments {
		share := inv.Amount.Div(totalInvested)
		payouts[i] = totalRevenue.Mul(share).RoundDown(precision)
		distributed = distributed.Add(payouts[i])
		if inv.Amount.GreaterThan(investments[largest].Amount) {
			largest = i
		}
	}

	if allocateRemainder {
		if remainder := totalRevenue.Sub(distributed); !remainder.IsZero() {
			payouts[largest] = payouts[largest].Add(remainder)
		}
	}
	return payouts, totalInvested, nil
}
