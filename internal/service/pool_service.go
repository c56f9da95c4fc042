package service

import (
	"fmt"
	"log"
	"strings"

	"chainmove/internal/database"
	"chainmove/internal/domain"
	"chainmove/internal/models"
	"chainmove/internal/repository"
	"chainmove/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PoolStore is the slice of pool persistence the service reads outside its
// own transactions. *repository.PoolRepository satisfies it.
type PoolStore interface {
	Create(p *models.InvestmentPool) error
	GetByID(id uint) (*models.InvestmentPool, error)
	List(status string) ([]models.InvestmentPool, error)
	OwnershipForUser(userID uint, poolIDs []uint) (map[uint]repository.PoolOwnership, error)
	GetInvestmentByTxRef(txRef string) (*models.PoolInvestment, error)
	ListInvestmentsByUser(userID uint) ([]models.PoolInvestment, error)
}

type PoolService struct {
	db       *gorm.DB
	pools    PoolStore
	settings *repository.SettingRepository
	notifSvc *NotificationService
	hub      *ws.PoolHub
}

func NewPoolService(db *gorm.DB, pools *repository.PoolRepository, settings *repository.SettingRepository, notifSvc *NotificationService, hub *ws.PoolHub) *PoolService {
	return &PoolService{db: db, pools: pools, settings: settings, notifSvc: notifSvc, hub: hub}
}

type CreatePoolInput struct {
	AssetType          string
	TargetAmountNgn    int64
	MinContributionNgn int64
	Description        string
	CreatedByUserID    uint
}

func (s *PoolService) CreatePool(in CreatePoolInput) (*models.InvestmentPool, error) {
	assetType := strings.ToUpper(strings.TrimSpace(in.AssetType))
	if !domain.ValidAssetType(assetType) {
		return nil, domain.Validation("unrecognized asset type")
	}
	assetPrice := domain.AssetPriceNgn[assetType]

	target := in.TargetAmountNgn
	if target == 0 {
		target = assetPrice
	}
	minContribution := in.MinContributionNgn
	if minContribution == 0 {
		settings, err := s.settings.Get()
		if err != nil {
			return nil, err
		}
		minContribution = settings.MinimumContributionNgn
	}

	if target <= 0 {
		return nil, domain.Validation("target amount must be greater than zero")
	}
	if minContribution <= 0 {
		return nil, domain.Validation("minimum contribution must be greater than zero")
	}
	if minContribution > target {
		return nil, domain.Validation("minimum contribution cannot exceed target amount")
	}

	pool := &models.InvestmentPool{
		AssetType:          assetType,
		AssetPriceNgn:      assetPrice,
		TargetAmountNgn:    target,
		MinContributionNgn: minContribution,
		Status:             domain.PoolStatusOpen,
		Description:        strings.TrimSpace(in.Description),
		CreatedByUserID:    in.CreatedByUserID,
	}
	if err := s.pools.Create(pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// PoolSummary is a pool annotated with the viewer's own position.
type PoolSummary struct {
	models.InvestmentPool
	RemainingAmountNgn int64   `json:"remaining_amount_ngn"`
	ProgressRatio      float64 `json:"progress_ratio"`
	UserOwnershipUnits int64   `json:"user_ownership_units"`
	UserOwnershipBps   int     `json:"user_ownership_bps"`
	UserInvestedNgn    int64   `json:"user_invested_ngn"`
}

func (s *PoolService) summarize(pool models.InvestmentPool, own repository.PoolOwnership) PoolSummary {
	return PoolSummary{
		InvestmentPool:     pool,
		RemainingAmountNgn: pool.RemainingAmountNgn(),
		ProgressRatio:      pool.ProgressRatio(),
		UserOwnershipUnits: own.OwnershipUnits,
		UserOwnershipBps:   own.OwnershipBps,
		UserInvestedNgn:    own.AmountNgn,
	}
}

// ListPools returns all pools (optionally filtered by status), each
// annotated with the viewer's aggregated ownership. The read is
// eventually-consistent; only the invest path needs a locked snapshot.
func (s *PoolService) ListPools(viewerUserID uint, status string) ([]PoolSummary, error) {
	if status != "" && status != domain.PoolStatusOpen && status != domain.PoolStatusFunded && status != domain.PoolStatusClosed {
		return nil, domain.Validation("unrecognized pool status filter")
	}
	pools, err := s.pools.List(status)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(pools))
	for _, p := range pools {
		ids = append(ids, p.ID)
	}
	ownership := map[uint]repository.PoolOwnership{}
	if viewerUserID != 0 && len(ids) > 0 {
		ownership, err = s.pools.OwnershipForUser(viewerUserID, ids)
		if err != nil {
			return nil, err
		}
	}
	out := make([]PoolSummary, 0, len(pools))
	for _, p := range pools {
		out = append(out, s.summarize(p, ownership[p.ID]))
	}
	return out, nil
}

func (s *PoolService) GetPool(poolID, viewerUserID uint) (*PoolSummary, error) {
	pool, err := s.pools.GetByID(poolID)
	if err != nil {
		return nil, database.Classify(err)
	}
	var own repository.PoolOwnership
	if viewerUserID != 0 {
		ownership, err := s.pools.OwnershipForUser(viewerUserID, []uint{poolID})
		if err != nil {
			return nil, err
		}
		own = ownership[poolID]
	}
	summary := s.summarize(*pool, own)
	return &summary, nil
}

func (s *PoolService) ListInvestmentsForUser(userID uint) ([]models.PoolInvestment, error) {
	return s.pools.ListInvestmentsByUser(userID)
}

// checkContribution validates a contribution against locked pool and
// investor snapshots. Callers validated amountNgn > 0 already.
func checkContribution(pool *models.InvestmentPool, user *models.User, amountNgn int64) error {
	if !user.CanInvest() {
		return domain.ErrForbiddenRole
	}
	if pool.Status != domain.PoolStatusOpen {
		return domain.BusinessRule("this pool is not open for investment")
	}
	if amountNgn < pool.MinContributionNgn {
		return domain.Validation(fmt.Sprintf("minimum contribution is %d", pool.MinContributionNgn))
	}
	remaining := pool.RemainingAmountNgn()
	if remaining <= 0 {
		return domain.BusinessRule("this pool has already reached its target amount")
	}
	// Overshoot is rejected, not truncated: the investor asked for a stake
	// the pool cannot grant.
	if amountNgn > remaining {
		return domain.BusinessRule(fmt.Sprintf("amount exceeds remaining target by %d", amountNgn-remaining))
	}
	if amountNgn > user.AvailableBalanceNgn {
		return domain.BusinessRule("insufficient internal wallet balance")
	}
	return nil
}

// applyContribution bumps the pool aggregates for a confirmed contribution
// and reports whether this contribution crossed the funding target. A pool
// that is already FUNDED never flips again; checkContribution rejects any
// later contribution first.
func applyContribution(pool *models.InvestmentPool, amountNgn int64, firstContribution bool) (becameFunded bool) {
	pool.CurrentRaisedNgn += amountNgn
	if firstContribution {
		pool.InvestorCount++
	}
	if pool.Status == domain.PoolStatusOpen && pool.CurrentRaisedNgn >= pool.TargetAmountNgn {
		pool.Status = domain.PoolStatusFunded
		return true
	}
	return false
}

// Invest executes the atomic invest-in-pool transaction:
// re-reads the pool and investor under row locks, validates the
// contribution, inserts the CONFIRMED PoolInvestment, debits the investor's
// internal wallet, bumps the pool aggregates and flips status to FUNDED when
// the target is reached, and journals the movement, all or nothing.
// A txRef that was already confirmed returns the existing row unchanged.
func (s *PoolService) Invest(poolID, userID uint, amountNgn int64, txRef string) (*models.PoolInvestment, error) {
	if amountNgn <= 0 {
		return nil, domain.Validation("amount must be greater than zero")
	}

	txRef = strings.TrimSpace(txRef)
	if txRef != "" {
		if existing, err := s.pools.GetInvestmentByTxRef(txRef); err == nil {
			return existing, nil
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	} else {
		txRef = fmt.Sprintf("pool_%d_%s", poolID, uuid.NewString())
	}

	var investment *models.PoolInvestment
	var fundingEvent *ws.PoolFundingEvent
	var becameFunded bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var pool models.InvestmentPool
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&pool, poolID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}

		if err := checkContribution(&pool, &user, amountNgn); err != nil {
			return err
		}

		units, bps := CalculateOwnership(amountNgn, pool.TargetAmountNgn)

		var priorConfirmed int64
		if err := tx.Model(&models.PoolInvestment{}).
			Where("pool_id = ? AND user_id = ? AND status = ?", pool.ID, user.ID, domain.InvestmentStatusConfirmed).
			Count(&priorConfirmed).Error; err != nil {
			return err
		}

		inv := &models.PoolInvestment{
			PoolID:         pool.ID,
			UserID:         user.ID,
			AmountNgn:      amountNgn,
			OwnershipUnits: units,
			OwnershipBps:   bps,
			TxRef:          txRef,
			Status:         domain.InvestmentStatusConfirmed,
		}
		if err := tx.Create(inv).Error; err != nil {
			return err
		}

		user.AvailableBalanceNgn -= amountNgn
		user.TotalInvestedNgn += amountNgn
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"available_balance_ngn": user.AvailableBalanceNgn,
			"total_invested_ngn":    user.TotalInvestedNgn,
		}).Error; err != nil {
			return err
		}

		becameFunded = applyContribution(&pool, amountNgn, priorConfirmed == 0)
		if err := tx.Model(&models.InvestmentPool{}).Where("id = ?", pool.ID).Updates(map[string]interface{}{
			"current_raised_ngn": pool.CurrentRaisedNgn,
			"investor_count":     pool.InvestorCount,
			"status":             pool.Status,
		}).Error; err != nil {
			return err
		}

		journal := &models.Transaction{
			UserID:           user.ID,
			UserType:         user.Role,
			Type:             models.TxTypePoolInvestment,
			AmountNgn:        amountNgn,
			Currency:         "NGN",
			Method:           models.TxMethodInternalWallet,
			Status:           models.TxStatusCompleted,
			Description:      fmt.Sprintf("%s pool investment", pool.AssetType),
			RelatedID:        fmt.Sprintf("%d", pool.ID),
			GatewayReference: txRef,
		}
		if err := tx.Create(journal).Error; err != nil {
			return err
		}

		investment = inv
		fundingEvent = &ws.PoolFundingEvent{
			PoolID:           pool.ID,
			CurrentRaisedNgn: pool.CurrentRaisedNgn,
			TargetAmountNgn:  pool.TargetAmountNgn,
			InvestorCount:    pool.InvestorCount,
			Status:           pool.Status,
		}
		return nil
	})
	if err != nil {
		// A concurrent request with the same txRef may have won the race on
		// the unique index; that is the idempotent success case.
		if database.IsDuplicateKey(err) {
			if existing, lookupErr := s.pools.GetInvestmentByTxRef(txRef); lookupErr == nil {
				return existing, nil
			}
		}
		return nil, database.Classify(err)
	}

	if s.hub != nil && fundingEvent != nil {
		s.hub.Broadcast(*fundingEvent)
	}
	if s.notifSvc != nil {
		s.notifSvc.NotifyInvestmentConfirmed(userID, investment)
		if becameFunded {
			s.notifSvc.NotifyPoolFunded(poolID)
		}
	}
	log.Printf("[POOL] investment confirmed pool=%d user=%d amount=%d tx_ref=%s", poolID, userID, amountNgn, txRef)
	return investment, nil
}
