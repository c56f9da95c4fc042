package service

import (
	"testing"

	"chainmove/internal/domain"
	"chainmove/internal/models"
	"chainmove/internal/repository"

	"gorm.io/gorm"
)

type fakePoolStore struct {
	investmentsByRef map[string]*models.PoolInvestment
	lookups          int
}

func (f *fakePoolStore) Create(p *models.InvestmentPool) error { return nil }

func (f *fakePoolStore) GetByID(id uint) (*models.InvestmentPool, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePoolStore) List(status string) ([]models.InvestmentPool, error) { return nil, nil }

func (f *fakePoolStore) OwnershipForUser(userID uint, poolIDs []uint) (map[uint]repository.PoolOwnership, error) {
	return map[uint]repository.PoolOwnership{}, nil
}

func (f *fakePoolStore) GetInvestmentByTxRef(txRef string) (*models.PoolInvestment, error) {
	f.lookups++
	if inv, ok := f.investmentsByRef[txRef]; ok {
		return inv, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePoolStore) ListInvestmentsByUser(userID uint) ([]models.PoolInvestment, error) {
	return nil, nil
}

func TestInvestRejectsNonPositiveAmount(t *testing.T) {
	svc := &PoolService{}
	for _, amount := range []int64{0, -1, -5_000} {
		if _, err := svc.Invest(1, 1, amount, ""); !domain.IsValidation(err) {
			t.Errorf("amount %d: got %v, want validation error", amount, err)
		}
	}
}

// A txRef that already confirmed returns the existing row without opening a
// new transaction; the nil DB here would panic if the replay fell through.
func TestInvestReplaysSameTxRef(t *testing.T) {
	existing := &models.PoolInvestment{
		ID:        7,
		PoolID:    3,
		UserID:    11,
		AmountNgn: 40_000,
		TxRef:     "pool_3_abc",
		Status:    domain.InvestmentStatusConfirmed,
	}
	store := &fakePoolStore{investmentsByRef: map[string]*models.PoolInvestment{"pool_3_abc": existing}}
	svc := &PoolService{pools: store}

	for i := 0; i < 2; i++ {
		got, err := svc.Invest(3, 11, 40_000, "pool_3_abc")
		if err != nil {
			t.Fatalf("replay %d: %v", i, err)
		}
		if got.ID != existing.ID || got.AmountNgn != 40_000 {
			t.Fatalf("replay %d returned %+v, want existing row", i, got)
		}
	}
	if store.lookups != 2 {
		t.Errorf("txRef lookups = %d, want 2", store.lookups)
	}
}

func TestApplyContributionFlipsFundedExactlyOnce(t *testing.T) {
	pool := &models.InvestmentPool{
		TargetAmountNgn:    100_000,
		MinContributionNgn: 5_000,
		CurrentRaisedNgn:   60_000,
		InvestorCount:      1,
		Status:             domain.PoolStatusOpen,
	}
	investor := &models.User{ID: 2, Role: domain.RoleInvestor, AvailableBalanceNgn: 1_000_000}

	if err := checkContribution(pool, investor, 40_000); err != nil {
		t.Fatalf("exact fill rejected: %v", err)
	}
	if !applyContribution(pool, 40_000, true) {
		t.Fatal("exact fill did not flip the pool to FUNDED")
	}
	if pool.Status != domain.PoolStatusFunded || pool.CurrentRaisedNgn != 100_000 || pool.InvestorCount != 2 {
		t.Fatalf("pool after fill = %+v", pool)
	}

	// The flip happened; any later contribution is rejected before it could
	// flip again.
	if err := checkContribution(pool, investor, 5_000); !domain.IsBusinessRule(err) {
		t.Errorf("contribution to FUNDED pool: got %v, want business rule error", err)
	}
}

func TestApplyContributionPartialFillStaysOpen(t *testing.T) {
	pool := &models.InvestmentPool{
		TargetAmountNgn:    100_000,
		MinContributionNgn: 5_000,
		Status:             domain.PoolStatusOpen,
	}
	if applyContribution(pool, 60_000, true) {
		t.Fatal("partial fill reported FUNDED")
	}
	if pool.Status != domain.PoolStatusOpen || pool.CurrentRaisedNgn != 60_000 || pool.InvestorCount != 1 {
		t.Fatalf("pool after partial fill = %+v", pool)
	}
	// A repeat contribution from the same investor does not bump the count.
	applyContribution(pool, 10_000, false)
	if pool.InvestorCount != 1 {
		t.Errorf("investor count = %d, want 1", pool.InvestorCount)
	}
}

func TestCheckContributionRejections(t *testing.T) {
	pool := &models.InvestmentPool{
		TargetAmountNgn:    100_000,
		MinContributionNgn: 5_000,
		CurrentRaisedNgn:   60_000,
		Status:             domain.PoolStatusOpen,
	}
	investor := &models.User{Role: domain.RoleInvestor, AvailableBalanceNgn: 10_000}
	driver := &models.User{Role: domain.RoleDriver, AvailableBalanceNgn: 1_000_000}

	if err := checkContribution(pool, driver, 10_000); err != domain.ErrForbiddenRole {
		t.Errorf("driver contribution: got %v, want ErrForbiddenRole", err)
	}
	if err := checkContribution(pool, investor, 1_000); !domain.IsValidation(err) {
		t.Errorf("below minimum: got %v, want validation error", err)
	}
	if err := checkContribution(pool, investor, 50_000); !domain.IsBusinessRule(err) {
		t.Errorf("overshoot: got %v, want business rule error", err)
	}
	if err := checkContribution(pool, investor, 20_000); !domain.IsBusinessRule(err) {
		t.Errorf("insufficient balance: got %v, want business rule error", err)
	}
}

func TestCreatePoolRejectsUnknownAssetType(t *testing.T) {
	svc := &PoolService{}
	_, err := svc.CreatePool(CreatePoolInput{AssetType: "tricycle", TargetAmountNgn: 100_000, MinContributionNgn: 5_000})
	if !domain.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestCreatePoolRejectsMinAboveTarget(t *testing.T) {
	svc := &PoolService{}
	_, err := svc.CreatePool(CreatePoolInput{AssetType: "KEKE", TargetAmountNgn: 10_000, MinContributionNgn: 20_000})
	if !domain.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestListPoolsRejectsUnknownStatusFilter(t *testing.T) {
	svc := &PoolService{}
	if _, err := svc.ListPools(0, "PAUSED"); !domain.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}
