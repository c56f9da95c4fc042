package service

import (
	"testing"

	"chainmove/internal/domain"
	"chainmove/internal/models"
)

func confirmed(userID uint, amount int64) models.PoolInvestment {
	return models.PoolInvestment{
		UserID:    userID,
		AmountNgn: amount,
		Status:    domain.InvestmentStatusConfirmed,
	}
}

func sumShares(shares []CreditShare) int64 {
	var total int64
	for _, s := range shares {
		total += s.AmountNgn
	}
	return total
}

func shareFor(t *testing.T, shares []CreditShare, userID uint) CreditShare {
	t.Helper()
	for _, s := range shares {
		if s.InvestorUserID == userID {
			return s
		}
	}
	t.Fatalf("no share for user %d", userID)
	return CreditShare{}
}

func TestAllocateCreditsProportional(t *testing.T) {
	investments := []models.PoolInvestment{
		confirmed(1, 60_000),
		confirmed(2, 40_000),
	}
	shares := AllocateCredits(1_000, investments)
	if got := sumShares(shares); got != 1_000 {
		t.Fatalf("allocated %d, want 1000", got)
	}
	if s := shareFor(t, shares, 1); s.AmountNgn != 600 || s.OwnershipBps != 6_000 {
		t.Errorf("user 1: got %d ngn %d bps, want 600 ngn 6000 bps", s.AmountNgn, s.OwnershipBps)
	}
	if s := shareFor(t, shares, 2); s.AmountNgn != 400 || s.OwnershipBps != 4_000 {
		t.Errorf("user 2: got %d ngn %d bps, want 400 ngn 4000 bps", s.AmountNgn, s.OwnershipBps)
	}
}

func TestAllocateCreditsRemainderToLargestShareholder(t *testing.T) {
	// 100 split three ways: floors give 33 each, the 1 left over lands on
	// the largest contributor.
	investments := []models.PoolInvestment{
		confirmed(1, 34_000),
		confirmed(2, 33_000),
		confirmed(3, 33_000),
	}
	shares := AllocateCredits(100, investments)
	if got := sumShares(shares); got != 100 {
		t.Fatalf("allocated %d, want 100", got)
	}
	if s := shareFor(t, shares, 1); s.AmountNgn != 34 {
		t.Errorf("largest shareholder got %d, want 34", s.AmountNgn)
	}
}

func TestAllocateCreditsTieBreaksOnLowerUserID(t *testing.T) {
	investments := []models.PoolInvestment{
		confirmed(9, 50_000),
		confirmed(4, 50_000),
	}
	shares := AllocateCredits(101, investments)
	if got := sumShares(shares); got != 101 {
		t.Fatalf("allocated %d, want 101", got)
	}
	if s := shareFor(t, shares, 4); s.AmountNgn != 51 {
		t.Errorf("user 4 got %d, want 51", s.AmountNgn)
	}
	if s := shareFor(t, shares, 9); s.AmountNgn != 50 {
		t.Errorf("user 9 got %d, want 50", s.AmountNgn)
	}
}

func TestAllocateCreditsAggregatesMultipleContributions(t *testing.T) {
	// Two rows from the same investor count as one position.
	investments := []models.PoolInvestment{
		confirmed(1, 30_000),
		confirmed(1, 30_000),
		confirmed(2, 40_000),
	}
	shares := AllocateCredits(1_000, investments)
	if len(shares) != 2 {
		t.Fatalf("got %d shares, want 2", len(shares))
	}
	if s := shareFor(t, shares, 1); s.AmountNgn != 600 {
		t.Errorf("user 1 got %d, want 600", s.AmountNgn)
	}
}

func TestAllocateCreditsSkipsUnconfirmedRows(t *testing.T) {
	investments := []models.PoolInvestment{
		confirmed(1, 50_000),
		{UserID: 2, AmountNgn: 50_000, Status: domain.InvestmentStatusPending},
	}
	shares := AllocateCredits(500, investments)
	if len(shares) != 1 || shares[0].InvestorUserID != 1 || shares[0].AmountNgn != 500 {
		t.Fatalf("unexpected shares %+v", shares)
	}
}

func TestAllocateCreditsDropsZeroShares(t *testing.T) {
	// A tiny payment floors the minor holder to zero; the row is dropped and
	// the full amount still conserves.
	investments := []models.PoolInvestment{
		confirmed(1, 99_999),
		confirmed(2, 1),
	}
	shares := AllocateCredits(2, investments)
	if got := sumShares(shares); got != 2 {
		t.Fatalf("allocated %d, want 2", got)
	}
	for _, s := range shares {
		if s.AmountNgn == 0 {
			t.Errorf("zero share kept for user %d", s.InvestorUserID)
		}
	}
}

func TestAllocateCreditsConservation(t *testing.T) {
	investments := []models.PoolInvestment{
		confirmed(1, 17),
		confirmed(2, 23),
		confirmed(3, 5),
		confirmed(4, 55),
	}
	for applied := int64(1); applied <= 500; applied++ {
		shares := AllocateCredits(applied, investments)
		if got := sumShares(shares); got != applied {
			t.Fatalf("applied=%d allocated=%d", applied, got)
		}
	}
}

func TestAllocateCreditsEmptyAndInvalidInputs(t *testing.T) {
	if shares := AllocateCredits(0, []models.PoolInvestment{confirmed(1, 100)}); shares != nil {
		t.Errorf("zero applied: got %+v", shares)
	}
	if shares := AllocateCredits(100, nil); shares != nil {
		t.Errorf("no investments: got %+v", shares)
	}
	if shares := AllocateCredits(100, []models.PoolInvestment{
		{UserID: 1, AmountNgn: 100, Status: domain.InvestmentStatusFailed},
	}); shares != nil {
		t.Errorf("no confirmed investments: got %+v", shares)
	}
}
