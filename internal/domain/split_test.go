package domain_test

import (
	"errors"
	"testing"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func inv(amount int64) *domain.Investment {
	return &domain.Investment{
		ID:         uuid.New(),
		ProjectID:  uuid.New(),
		InvestorID: uuid.New(),
		Amount:     decimal.NewFromInt(amount),
		Status:     domain.InvestmentStatusSuccess,
	}
}

// TestRevenueSplitProportions validates the proportional split used by
// DistributionService.  No I/O — pure arithmetic.
//
//	Scenario:
//	  investor A = 10, investor B = 30, revenue = 40
//
//	Expected:
//	  share_A  = 10/40 = 0.25  → payout_A = 40 × 0.25 = 10
//	  share_B  = 30/40 = 0.75  → payout_B = 40 × 0.75 = 30
func TestRevenueSplitProportions(t *testing.T) {
	investments := []*domain.Investment{inv(10), inv(30)}
	revenue := decimal.NewFromInt(40)

	payouts, totalInvested, err := domain.SplitRevenue(investments, revenue, 2, true)
	if err != nil {
		t.Fatalf("SplitRevenue: %v", err)
	}

	if !totalInvested.Equal(decimal.NewFromInt(40)) {
		t.Errorf("total invested = %s, want 40", totalInvested)
	}
	if !payouts[0].Equal(decimal.NewFromInt(10)) {
		t.Errorf("payout A = %s, want 10", payouts[0])
	}
	if !payouts[1].Equal(decimal.NewFromInt(30)) {
		t.Errorf("payout B = %s, want 30", payouts[1])
	}
}

// TestRevenueSplitSumInvariant validates that the payouts of an inexact
// split sum exactly to the reported revenue when remainder allocation is on.
//
//	Scenario: three equal investors, revenue = 100
//	  raw payout each = 33.333... → rounded down to 33.33
//	  residual = 100 − 99.99 = 0.01 → added to the largest (first) payout
func TestRevenueSplitSumInvariant(t *testing.T) {
	investments := []*domain.Investment{inv(50), inv(50), inv(50)}
	revenue := decimal.NewFromInt(100)

	payouts, _, err := domain.SplitRevenue(investments, revenue, 2, true)
	if err != nil {
		t.Fatalf("SplitRevenue: %v", err)
	}

	sum := decimal.Zero
	for _, p := range payouts {
		sum = sum.Add(p)
	}
	if !sum.Equal(revenue) {
		t.Errorf("payout sum = %s, want exactly %s", sum, revenue)
	}

	if !payouts[0].Equal(decimal.NewFromFloat(33.34)) {
		t.Errorf("remainder payout = %s, want 33.34", payouts[0])
	}
	for i, p := range payouts[1:] {
		if !p.Equal(decimal.NewFromFloat(33.33)) {
			t.Errorf("payout[%d] = %s, want 33.33", i+1, p)
		}
	}
}

// TestRevenueSplitRemainderGoesToLargest pins the residual to the largest
// investor, not the first.
func TestRevenueSplitRemainderGoesToLargest(t *testing.T) {
	investments := []*domain.Investment{inv(10), inv(70), inv(20)}
	// 1/3 shares are exact here; use a revenue that rounds unevenly.
	revenue := decimal.NewFromFloat(100.01)

	payouts, _, err := domain.SplitRevenue(investments, revenue, 2, true)
	if err != nil {
		t.Fatalf("SplitRevenue: %v", err)
	}

	sum := decimal.Zero
	for _, p := range payouts {
		sum = sum.Add(p)
	}
	if !sum.Equal(revenue) {
		t.Errorf("payout sum = %s, want exactly %s", sum, revenue)
	}

	// Largest investor (index 1, 70%) absorbs the residual: its payout must
	// be at least its exact pro-rata floor.
	floor := revenue.Mul(decimal.NewFromFloat(0.7)).RoundDown(2)
	if payouts[1].LessThan(floor) {
		t.Errorf("largest payout = %s, want >= %s", payouts[1], floor)
	}
}

// TestRevenueSplitWithoutRemainderAllocation verifies that disabling
// remainder allocation leaves the rounding residual undistributed.
func TestRevenueSplitWithoutRemainderAllocation(t *testing.T) {
	investments := []*domain.Investment{inv(50), inv(50), inv(50)}
	revenue := decimal.NewFromInt(100)

	payouts, _, err := domain.SplitRevenue(investments, revenue, 2, false)
	if err != nil {
		t.Fatalf("SplitRevenue: %v", err)
	}

	sum := decimal.Zero
	for _, p := range payouts {
		sum = sum.Add(p)
	}
	want := decimal.NewFromFloat(99.99)
	if !sum.Equal(want) {
		t.Errorf("payout sum = %s, want %s (0.01 residual kept)", sum, want)
	}
}

// TestRevenueSplitNoInvestments covers the empty and zero-total ledgers.
func TestRevenueSplitNoInvestments(t *testing.T) {
	revenue := decimal.NewFromInt(100)

	_, _, err := domain.SplitRevenue(nil, revenue, 2, true)
	if !errors.Is(err, domain.ErrNoInvestments) {
		t.Errorf("empty ledger: err = %v, want ErrNoInvestments", err)
	}

	_, _, err = domain.SplitRevenue([]*domain.Investment{inv(0)}, revenue, 2, true)
	if !errors.Is(err, domain.ErrNoInvestments) {
		t.Errorf("zero-total ledger: err = %v, want ErrNoInvestments", err)
	}
}

// TestFundingPercentage validates the derived funding figure.
//
//	Scenario: investments 10 + 20 + 30 = 60 against a goal of 100 → 60 %.
//	Over-funded projects report above 100; there is no clamp.
func TestFundingPercentage(t *testing.T) {
	p := &domain.Project{GoalAmount: decimal.NewFromInt(100)}

	total := domain.SumAmounts([]*domain.Investment{inv(10), inv(20), inv(30)})
	if !total.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("total = %s, want 60", total)
	}
	if got := p.FundingPercentage(total); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("funding %% = %s, want 60", got)
	}

	over := decimal.NewFromInt(150)
	if got := p.FundingPercentage(over); !got.Equal(decimal.NewFromInt(150)) {
		t.Errorf("over-funded %% = %s, want 150 (no clamp)", got)
	}

	zeroGoal := &domain.Project{GoalAmount: decimal.Zero}
	if got := zeroGoal.FundingPercentage(total); !got.IsZero() {
		t.Errorf("zero-goal %% = %s, want 0", got)
	}
}

// TestSummarizeFunding covers the derived read model: [10, 20, 30] against a
// goal of 100 yields total 60, three investors, 60% funded. The count is per
// investment row, so one backer investing twice still counts twice.
func TestSummarizeFunding(t *testing.T) {
	p := &domain.Project{GoalAmount: decimal.NewFromInt(100)}
	investments := []*domain.Investment{inv(10), inv(20), inv(30)}

	got := domain.SummarizeFunding(p, investments)
	if !got.TotalInvested.Equal(decimal.NewFromInt(60)) {
		t.Errorf("total invested = %s, want 60", got.TotalInvested)
	}
	if got.InvestorCount != 3 {
		t.Errorf("investor count = %d, want 3", got.InvestorCount)
	}
	if !got.FundingPercentage.Equal(decimal.NewFromInt(60)) {
		t.Errorf("funding %% = %s, want 60", got.FundingPercentage)
	}

	// Same backer twice: still two rows.
	repeat := inv(5)
	again := &domain.Investment{ID: uuid.New(), ProjectID: repeat.ProjectID, InvestorID: repeat.InvestorID, Amount: decimal.NewFromInt(5)}
	got = domain.SummarizeFunding(p, []*domain.Investment{repeat, again})
	if got.InvestorCount != 2 {
		t.Errorf("investor count with repeat backer = %d, want 2", got.InvestorCount)
	}
	if !got.TotalInvested.Equal(decimal.NewFromInt(10)) {
		t.Errorf("total with repeat backer = %s, want 10", got.TotalInvested)
	}
}
