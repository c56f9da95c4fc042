package models

import "testing"

func TestPoolRemainingAndProgress(t *testing.T) {
	p := &InvestmentPool{TargetAmountNgn: 100_000, CurrentRaisedNgn: 60_000}
	if got := p.RemainingAmountNgn(); got != 40_000 {
		t.Errorf("remaining = %d, want 40000", got)
	}
	if got := p.ProgressRatio(); got != 0.6 {
		t.Errorf("progress = %v, want 0.6", got)
	}

	p.CurrentRaisedNgn = 100_000
	if got := p.RemainingAmountNgn(); got != 0 {
		t.Errorf("remaining at target = %d, want 0", got)
	}
}

func TestContractFinalInstallmentIsCapped(t *testing.T) {
	c := &HirePurchaseContract{
		TotalPayableNgn:  52_000,
		WeeklyPaymentNgn: 1_000,
		TotalPaidNgn:     51_500,
	}
	if got := c.RemainingBalanceNgn(); got != 500 {
		t.Errorf("remaining = %d, want 500", got)
	}
	if got := c.NextPaymentAmountNgn(); got != 500 {
		t.Errorf("next payment = %d, want 500", got)
	}

	c.TotalPaidNgn = 52_000
	if got := c.RemainingBalanceNgn(); got != 0 {
		t.Errorf("remaining when settled = %d, want 0", got)
	}
	if got := c.ProgressRatio(); got != 1 {
		t.Errorf("progress when settled = %v, want 1", got)
	}
}

func TestUserCanInvest(t *testing.T) {
	if !(&User{Role: "investor"}).CanInvest() {
		t.Error("investor should be able to invest")
	}
	if !(&User{Role: "admin"}).CanInvest() {
		t.Error("admin should be able to invest")
	}
	if (&User{Role: "driver"}).CanInvest() {
		t.Error("driver should not be able to invest")
	}
}
