package service

import (
	"errors"
	"testing"
	"time"

	"chainmove/internal/domain"
	"chainmove/internal/models"

	"gorm.io/gorm"
)

type fakeContractStore struct {
	contract *models.HirePurchaseContract
}

func (f *fakeContractStore) GetByID(id uint) (*models.HirePurchaseContract, error) {
	if f.contract == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.contract, nil
}

func (f *fakeContractStore) GetForDriver(driverUserID uint) (*models.HirePurchaseContract, error) {
	if f.contract == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.contract, nil
}

type fakePaymentStore struct {
	byRef   map[string]*models.DriverPayment
	lookups int
	creates int
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{byRef: map[string]*models.DriverPayment{}}
}

func (f *fakePaymentStore) Create(p *models.DriverPayment) error {
	f.creates++
	f.byRef[p.PaystackRef] = p
	return nil
}

func (f *fakePaymentStore) GetByPaystackRef(ref string) (*models.DriverPayment, error) {
	f.lookups++
	if p, ok := f.byRef[ref]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentStore) ListByDriver(driverUserID uint, contractID uint, limit int) ([]models.DriverPayment, error) {
	return nil, nil
}

func (f *fakePaymentStore) MarkFailed(paystackRef, reason string) error {
	if p, ok := f.byRef[paystackRef]; ok {
		p.Status = domain.PaymentStatusFailed
		p.FailedReason = reason
	}
	return nil
}

func TestCreateContractRejectsNegativeDeposit(t *testing.T) {
	svc := &ContractService{}
	_, err := svc.CreateContract(CreateContractInput{DriverUserID: 1, PoolID: 1, DepositNgn: -1})
	if !domain.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	svc := &ContractService{}
	if _, err := svc.CreatePayment(1, 0, "", ""); !domain.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

// Replaying a reference returns the pending row already recorded for it; one
// row, one insert.
func TestCreatePaymentReplaysSameReference(t *testing.T) {
	contracts := &fakeContractStore{contract: &models.HirePurchaseContract{
		ID:           4,
		DriverUserID: 9,
		Status:       domain.ContractStatusActive,
	}}
	payments := newFakePaymentStore()
	svc := &ContractService{contracts: contracts, payments: payments}

	first, err := svc.CreatePayment(9, 1_000, "repay_4_x", "driver@example.com")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.CreatePayment(9, 1_000, "repay_4_x", "driver@example.com")
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if second != first {
		t.Errorf("replay returned a different row: %+v", second)
	}
	if payments.creates != 1 {
		t.Errorf("creates = %d, want 1", payments.creates)
	}
}

func TestConfirmPaymentRejectsEmptyReference(t *testing.T) {
	svc := &ContractService{}
	if _, err := svc.ConfirmPayment("  ", "card", 0); !domain.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestConfirmPaymentUnknownReference(t *testing.T) {
	svc := &ContractService{payments: newFakePaymentStore()}
	if _, err := svc.ConfirmPayment("repay_4_missing", "card", 0); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

// A CONFIRMED reference is returned unchanged on every replay; the nil DB
// here would panic if a replay re-entered the settlement transaction, so a
// second credit fan-out is unreachable.
func TestConfirmPaymentReplaysConfirmedReference(t *testing.T) {
	confirmedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	payments := newFakePaymentStore()
	payments.byRef["repay_4_x"] = &models.DriverPayment{
		ID:               21,
		ContractID:       4,
		DriverUserID:     9,
		AmountNgn:        1_000,
		AppliedAmountNgn: 1_000,
		PaystackRef:      "repay_4_x",
		Status:           domain.PaymentStatusConfirmed,
		ConfirmedAt:      &confirmedAt,
	}
	svc := &ContractService{payments: payments}

	for i := 0; i < 2; i++ {
		got, err := svc.ConfirmPayment("repay_4_x", "card", 1_000)
		if err != nil {
			t.Fatalf("replay %d: %v", i, err)
		}
		if got.ID != 21 || got.AppliedAmountNgn != 1_000 || got.Status != domain.PaymentStatusConfirmed {
			t.Fatalf("replay %d returned %+v", i, got)
		}
	}
	if payments.lookups != 2 {
		t.Errorf("lookups = %d, want 2", payments.lookups)
	}
}

func TestConfirmPaymentRejectsFailedReference(t *testing.T) {
	payments := newFakePaymentStore()
	payments.byRef["repay_4_x"] = &models.DriverPayment{
		PaystackRef: "repay_4_x",
		AmountNgn:   1_000,
		Status:      domain.PaymentStatusFailed,
	}
	svc := &ContractService{payments: payments}
	if _, err := svc.ConfirmPayment("repay_4_x", "card", 1_000); !domain.IsBusinessRule(err) {
		t.Errorf("got %v, want business rule error", err)
	}
}

// A gateway charge that does not match the initialized amount is rejected
// before anything is applied.
func TestConfirmPaymentRejectsGatewayAmountMismatch(t *testing.T) {
	payments := newFakePaymentStore()
	payments.byRef["repay_4_x"] = &models.DriverPayment{
		PaystackRef: "repay_4_x",
		AmountNgn:   5_000,
		Status:      domain.PaymentStatusPending,
	}
	svc := &ContractService{payments: payments}

	if _, err := svc.ConfirmPayment("repay_4_x", "card", 4_000); !domain.IsBusinessRule(err) {
		t.Errorf("got %v, want business rule error", err)
	}
	if payments.byRef["repay_4_x"].Status != domain.PaymentStatusPending {
		t.Errorf("payment status = %s, want PENDING", payments.byRef["repay_4_x"].Status)
	}
}

func TestApplyRepaymentCapsFinalInstallment(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	due := start.AddDate(0, 0, 7)
	contract := &models.HirePurchaseContract{
		TotalPayableNgn:  52_000,
		WeeklyPaymentNgn: 1_000,
		TotalPaidNgn:     51_500,
		Status:           domain.ContractStatusActive,
		StartDate:        start,
		NextDueDate:      &due,
	}

	applied, unapplied, completed := applyRepayment(contract, 1_000)
	if applied != 500 || unapplied != 500 {
		t.Fatalf("applied/unapplied = %d/%d, want 500/500", applied, unapplied)
	}
	if !completed || contract.Status != domain.ContractStatusCompleted {
		t.Fatalf("contract after final payment = %+v", contract)
	}
	if contract.NextDueDate != nil {
		t.Errorf("next due date = %v, want nil", contract.NextDueDate)
	}
	if contract.TotalPaidNgn != contract.TotalPayableNgn {
		t.Errorf("total paid = %d, want %d", contract.TotalPaidNgn, contract.TotalPayableNgn)
	}
}

func TestApplyRepaymentAdvancesSchedule(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	contract := &models.HirePurchaseContract{
		TotalPayableNgn:  52_000,
		WeeklyPaymentNgn: 1_000,
		Status:           domain.ContractStatusActive,
		StartDate:        start,
	}

	applied, unapplied, completed := applyRepayment(contract, 1_000)
	if applied != 1_000 || unapplied != 0 || completed {
		t.Fatalf("applied/unapplied/completed = %d/%d/%v", applied, unapplied, completed)
	}
	want := start.AddDate(0, 0, 14)
	if contract.NextDueDate == nil || !contract.NextDueDate.Equal(want) {
		t.Errorf("next due date = %v, want %v", contract.NextDueDate, want)
	}
}
