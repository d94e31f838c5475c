// Package domain defines the core business entities and types for the
// TAPP creator/brand marketplace and its investment ledger.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Types & constants
// ──────────────────────────────────────────────────────────────────────────────

// ProjectStatus represents the lifecycle state of a crowdfunding project.
// The only transition is LIVE → COMPLETED, performed exactly once by a
// successful revenue distribution.
type ProjectStatus string

const (
	ProjectStatusLive      ProjectStatus = "LIVE"      // accepting investments
	ProjectStatusCompleted ProjectStatus = "COMPLETED" // revenue distributed; terminal
)

// hundred is shared by the percentage helpers.
var hundred = decimal.NewFromInt(100)

// ──────────────────────────────────────────────────────────────────────────────
// Project
// ──────────────────────────────────────────────────────────────────────────────

// Project is a crowdfunding campaign created by a creator.
//
// Funding figures (total invested, investor count, funding percentage) are
// deliberately NOT fields on this struct's persisted form: they are always
// derived by folding over the investments table so that a cached total can
// never drift from the underlying ledger.
type Project struct {
	ID            uuid.UUID        `json:"id"             db:"id"`
	CreatorID     uuid.UUID        `json:"creator_id"     db:"creator_id"`
	Title         string           `json:"title"          db:"title"`
	Description   string           `json:"description"    db:"description"`
	GoalAmount    decimal.Decimal  `json:"goal_amount"    db:"goal_amount"`
	MinInvestment decimal.Decimal  `json:"min_investment" db:"min_investment"`
	ProjectedROI  decimal.Decimal  `json:"projected_roi"  db:"projected_roi"`
	Status        ProjectStatus    `json:"status"         db:"status"`
	TotalRevenue  *decimal.Decimal `json:"total_revenue"  db:"total_revenue"` // set on distribution
	CreatedAt     time.Time        `json:"created_at"     db:"created_at"`
	CompletedAt   *time.Time       `json:"completed_at"   db:"completed_at"`
}

// IsLive returns true while the project can still receive a distribution.
func (p *Project) IsLive() bool {
	return p.Status == ProjectStatusLive
}

// FundingPercentage computes totalInvested/goalAmount as a percentage rounded
// to 2 decimal places. Over-funded projects report values above 100; there is
// no upper clamp. Returns decimal.Zero when the goal is not positive.
func (p *Project) FundingPercentage(totalInvested decimal.Decimal) decimal.Decimal {
	if !p.GoalAmount.IsPositive() {
		return decimal.Zero
	}
	return totalInvested.Div(p.GoalAmount).Mul(hundred).Round(2)
}

// ──────────────────────────────────────────────────────────────────────────────
// FundingSummary — derived read model, never persisted
// ──────────────────────────────────────────────────────────────────────────────

// FundingSummary is the aggregate funding state of a project, recomputed from
// the investment set on every read.
type FundingSummary struct {
	TotalInvested     decimal.Decimal `json:"total_invested"`
	InvestorCount     int             `json:"investor_count"`
	FundingPercentage decimal.Decimal `json:"funding_percentage"`
}

// SummarizeFunding folds a project's complete investment set into its funding
// summary. InvestorCount is the number of investment rows, not distinct
// backers: a backer who invests twice counts twice.
func SummarizeFunding(p *Project, investments []*Investment) FundingSummary {
	total := SumAmounts(investments)
	return FundingSummary{
		TotalInvested:     total,
		InvestorCount:     len(investments),
		FundingPercentage: p.FundingPercentage(total),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Request / response value objects
// ──────────────────────────────────────────────────────────────────────────────

// CreateProjectRequest carries the validated inputs for creating a project.
type CreateProjectRequest struct {
	Title         string          `json:"title"          binding:"required,min=3,max=200"`
	Description   string          `json:"description"    binding:"required"`
	GoalAmount    decimal.Decimal `json:"goal_amount"`
	MinInvestment decimal.Decimal `json:"min_investment"`
	ProjectedROI  decimal.Decimal `json:"projected_roi"`
}

// ProjectView is the API view of a project enriched with creator info and the
// derived funding figures used on listing and detail endpoints.
type ProjectView struct {
	Project
	CreatorName       string          `json:"creator_name,omitempty"`
	CreatorAvatar     string          `json:"creator_avatar,omitempty"`
	TotalInvested     decimal.Decimal `json:"total_invested"`
	InvestorCount     int             `json:"investor_count"`
	FundingPercentage decimal.Decimal `json:"funding_percentage"`
}

// WithFunding builds a ProjectView from the project and its funding summary.
func (p *Project) WithFunding(f FundingSummary) ProjectView {
	return ProjectView{
		Project:           *p,
		TotalInvested:     f.TotalInvested,
		InvestorCount:     f.InvestorCount,
		FundingPercentage: f.FundingPercentage,
	}
}
