package service

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"chainmove/internal/database"
	"chainmove/internal/domain"
	"chainmove/internal/models"
	"chainmove/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContractStore and PaymentStore are the slices of persistence the service
// reads outside its own transactions; the concrete repositories satisfy them.
type ContractStore interface {
	GetByID(id uint) (*models.HirePurchaseContract, error)
	GetForDriver(driverUserID uint) (*models.HirePurchaseContract, error)
}

type PaymentStore interface {
	Create(p *models.DriverPayment) error
	GetByPaystackRef(ref string) (*models.DriverPayment, error)
	ListByDriver(driverUserID uint, contractID uint, limit int) ([]models.DriverPayment, error)
	MarkFailed(paystackRef, reason string) error
}

type ContractService struct {
	db        *gorm.DB
	contracts ContractStore
	payments  PaymentStore
	credits   *repository.CreditRepository
	settings  *repository.SettingRepository
	notifSvc  *NotificationService
}

func NewContractService(db *gorm.DB, contracts *repository.ContractRepository, payments *repository.DriverPaymentRepository, credits *repository.CreditRepository, settings *repository.SettingRepository, notifSvc *NotificationService) *ContractService {
	return &ContractService{
		db:        db,
		contracts: contracts,
		payments:  payments,
		credits:   credits,
		settings:  settings,
		notifSvc:  notifSvc,
	}
}

// TotalPayableNgn applies the flat ROI markup to the financed principal,
// rounding up so the platform never undercollects by a fraction of a naira.
func TotalPayableNgn(financedNgn int64, roiPercent float64) int64 {
	if financedNgn <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(financedNgn) * (1 + roiPercent/100)))
}

// WeeklyPaymentNgn is the ceil-divided installment; the final installment is
// smaller when the schedule does not divide evenly.
func WeeklyPaymentNgn(totalPayableNgn int64, durationWeeks int) int64 {
	if durationWeeks <= 0 {
		return totalPayableNgn
	}
	return (totalPayableNgn + int64(durationWeeks) - 1) / int64(durationWeeks)
}

// NextDueDate advances one week past the most recent schedule boundary at or
// before paidThrough weeks of progress.
func NextDueDate(startDate time.Time, weeklyPaymentNgn, totalPaidNgn int64) time.Time {
	weeksPaid := int64(0)
	if weeklyPaymentNgn > 0 {
		weeksPaid = totalPaidNgn / weeklyPaymentNgn
	}
	return startDate.AddDate(0, 0, int(weeksPaid+1)*7)
}

type CreateContractInput struct {
	DriverUserID       uint
	PoolID             uint
	VehicleDisplayName string
	DepositNgn         int64
	DurationWeeks      int
	RoiPercent         float64
	StartDate          time.Time
}

// CreateContract issues a hire-purchase contract against a FUNDED pool.
// Duration and ROI fall back to the platform settings when the admin leaves
// them zero.
func (s *ContractService) CreateContract(in CreateContractInput) (*models.HirePurchaseContract, error) {
	if in.DepositNgn < 0 {
		return nil, domain.Validation("deposit cannot be negative")
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	duration := in.DurationWeeks
	if duration == 0 {
		duration = settings.DefaultRepaymentDurationWeeks
	}
	if duration < 1 {
		return nil, domain.Validation("duration must be at least one week")
	}
	roi := in.RoiPercent
	if roi == 0 {
		roi = settings.DefaultRoiPercent
	}
	if roi < 0 || roi > 100 {
		return nil, domain.Validation("roi percent must be between 0 and 100")
	}

	var contract *models.HirePurchaseContract
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var pool models.InvestmentPool
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&pool, in.PoolID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}
		if pool.Status != domain.PoolStatusFunded {
			return domain.BusinessRule("contracts can only be issued against a fully funded pool")
		}

		var driver models.User
		if err := tx.First(&driver, in.DriverUserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}
		if !driver.IsDriver() {
			return domain.BusinessRule("contracts can only be issued to driver accounts")
		}
		var active int64
		if err := tx.Model(&models.HirePurchaseContract{}).
			Where("driver_user_id = ? AND status = ?", driver.ID, domain.ContractStatusActive).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return domain.BusinessRule("driver already has an active contract")
		}
		var existing int64
		if err := tx.Model(&models.HirePurchaseContract{}).
			Where("pool_id = ? AND status = ?", pool.ID, domain.ContractStatusActive).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return domain.BusinessRule("pool already backs an active contract")
		}

		principal := pool.TargetAmountNgn
		if in.DepositNgn >= principal {
			return domain.Validation("deposit must be smaller than the financed amount")
		}
		financed := principal - in.DepositNgn
		totalPayable := TotalPayableNgn(financed, roi)
		weekly := WeeklyPaymentNgn(totalPayable, duration)

		start := in.StartDate
		if start.IsZero() {
			start = time.Now().UTC()
		}
		due := start.AddDate(0, 0, 7)

		contract = &models.HirePurchaseContract{
			DriverUserID:       driver.ID,
			PoolID:             pool.ID,
			AssetType:          pool.AssetType,
			VehicleDisplayName: strings.TrimSpace(in.VehicleDisplayName),
			PrincipalNgn:       principal,
			DepositNgn:         in.DepositNgn,
			TotalPayableNgn:    totalPayable,
			DurationWeeks:      duration,
			WeeklyPaymentNgn:   weekly,
			Status:             domain.ContractStatusActive,
			StartDate:          start,
			NextDueDate:        &due,
		}
		return tx.Create(contract).Error
	})
	if err != nil {
		return nil, database.Classify(err)
	}
	log.Printf("[CONTRACT] created contract=%d driver=%d pool=%d payable=%d", contract.ID, contract.DriverUserID, contract.PoolID, contract.TotalPayableNgn)
	return contract, nil
}

// ContractSummary decorates a contract with its derived repayment figures.
type ContractSummary struct {
	models.HirePurchaseContract
	RemainingBalanceNgn  int64   `json:"remaining_balance_ngn"`
	ProgressRatio        float64 `json:"progress_ratio"`
	NextPaymentAmountNgn int64   `json:"next_payment_amount_ngn"`
}

func summarizeContract(c *models.HirePurchaseContract) *ContractSummary {
	return &ContractSummary{
		HirePurchaseContract: *c,
		RemainingBalanceNgn:  c.RemainingBalanceNgn(),
		ProgressRatio:        c.ProgressRatio(),
		NextPaymentAmountNgn: c.NextPaymentAmountNgn(),
	}
}

func (s *ContractService) GetContractForDriver(driverUserID uint) (*ContractSummary, error) {
	c, err := s.contracts.GetForDriver(driverUserID)
	if err != nil {
		return nil, database.Classify(err)
	}
	return summarizeContract(c), nil
}

func (s *ContractService) GetContract(id uint) (*ContractSummary, error) {
	c, err := s.contracts.GetByID(id)
	if err != nil {
		return nil, database.Classify(err)
	}
	return summarizeContract(c), nil
}

// CreatePayment records a PENDING repayment awaiting gateway confirmation.
// An empty paystackRef gets a generated one for manual/offline channels.
func (s *ContractService) CreatePayment(driverUserID uint, amountNgn int64, paystackRef, payerEmail string) (*models.DriverPayment, error) {
	if amountNgn <= 0 {
		return nil, domain.Validation("amount must be greater than zero")
	}
	contract, err := s.contracts.GetForDriver(driverUserID)
	if err != nil {
		return nil, database.Classify(err)
	}
	if contract.Status != domain.ContractStatusActive {
		return nil, domain.BusinessRule("no active contract to pay against")
	}

	paystackRef = strings.TrimSpace(paystackRef)
	if paystackRef != "" {
		if existing, err := s.payments.GetByPaystackRef(paystackRef); err == nil {
			return existing, nil
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	} else {
		paystackRef = fmt.Sprintf("repay_%d_%s", contract.ID, uuid.NewString())
	}

	payment := &models.DriverPayment{
		ContractID:   contract.ID,
		DriverUserID: driverUserID,
		AmountNgn:    amountNgn,
		Method:       "PAYSTACK",
		PaystackRef:  paystackRef,
		PayerEmail:   payerEmail,
		Status:       domain.PaymentStatusPending,
	}
	if err := s.payments.Create(payment); err != nil {
		if database.IsDuplicateKey(err) {
			if existing, lookupErr := s.payments.GetByPaystackRef(paystackRef); lookupErr == nil {
				return existing, nil
			}
		}
		return nil, database.Classify(err)
	}
	return payment, nil
}

// applyRepayment applies a confirmed payment to the locked contract snapshot,
// capping at the remaining balance. Returns the applied and unapplied split
// and whether this payment completed the contract.
func applyRepayment(contract *models.HirePurchaseContract, amountNgn int64) (applied, unapplied int64, completed bool) {
	applied = amountNgn
	if remaining := contract.RemainingBalanceNgn(); applied > remaining {
		applied = remaining
	}
	unapplied = amountNgn - applied
	contract.TotalPaidNgn += applied
	if contract.TotalPaidNgn >= contract.TotalPayableNgn {
		contract.Status = domain.ContractStatusCompleted
		contract.NextDueDate = nil
		return applied, unapplied, true
	}
	due := NextDueDate(contract.StartDate, contract.WeeklyPaymentNgn, contract.TotalPaidNgn)
	contract.NextDueDate = &due
	return applied, unapplied, false
}

// ConfirmPayment settles a repayment end to end: it applies the amount to the
// contract (capped at the remaining balance, with any excess credited to the
// driver's internal wallet), flips the contract to COMPLETED when fully paid,
// and fans the applied amount out to the pool's investors as proportional
// wallet credits. Idempotent on paystackRef: a CONFIRMED payment returns
// unchanged, and the unique credit index blocks a double fan-out.
// gatewayAmountNgn, when non-zero, is the amount the gateway reports having
// charged; a mismatch with the initialized amount rejects the confirmation.
func (s *ContractService) ConfirmPayment(paystackRef, channel string, gatewayAmountNgn int64) (*models.DriverPayment, error) {
	paystackRef = strings.TrimSpace(paystackRef)
	if paystackRef == "" {
		return nil, domain.Validation("payment reference is required")
	}

	existing, err := s.payments.GetByPaystackRef(paystackRef)
	if err != nil {
		return nil, database.Classify(err)
	}
	if existing.Status == domain.PaymentStatusConfirmed {
		return existing, nil
	}
	if existing.Status == domain.PaymentStatusFailed {
		return nil, domain.BusinessRule("payment was already marked failed")
	}
	if gatewayAmountNgn > 0 && gatewayAmountNgn != existing.AmountNgn {
		return nil, domain.BusinessRule(fmt.Sprintf("gateway charged %d but payment was initialized for %d", gatewayAmountNgn, existing.AmountNgn))
	}

	var payment *models.DriverPayment
	var creditedShares []CreditShare
	var contractID uint
	var completedDriverID uint

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var p models.DriverPayment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("paystack_ref = ?", paystackRef).First(&p).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}
		if p.Status == domain.PaymentStatusConfirmed {
			payment = &p
			return nil
		}
		if p.Status == domain.PaymentStatusFailed {
			return domain.BusinessRule("payment was already marked failed")
		}

		var contract models.HirePurchaseContract
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&contract, p.ContractID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}
		if contract.Status != domain.ContractStatusActive {
			return domain.BusinessRule("contract is no longer active")
		}

		applied, unapplied, completed := applyRepayment(&contract, p.AmountNgn)
		if completed {
			completedDriverID = contract.DriverUserID
		}
		if err := tx.Model(&models.HirePurchaseContract{}).Where("id = ?", contract.ID).Updates(map[string]interface{}{
			"total_paid_ngn": contract.TotalPaidNgn,
			"status":         contract.Status,
			"next_due_date":  contract.NextDueDate,
		}).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		p.Status = domain.PaymentStatusConfirmed
		p.AppliedAmountNgn = applied
		p.Channel = channel
		p.ConfirmedAt = &now
		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		if unapplied > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", contract.DriverUserID).
				Update("available_balance_ngn", gorm.Expr("available_balance_ngn + ?", unapplied)).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.Transaction{
				UserID:           contract.DriverUserID,
				UserType:         domain.RoleDriver,
				Type:             models.TxTypeWalletFunding,
				AmountNgn:        unapplied,
				Currency:         "NGN",
				Method:           models.TxMethodSystem,
				Status:           models.TxStatusCompleted,
				Description:      "overpayment returned to wallet",
				RelatedID:        fmt.Sprintf("%d", contract.ID),
				GatewayReference: paystackRef + "_unapplied",
			}).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&models.Transaction{
			UserID:           contract.DriverUserID,
			UserType:         domain.RoleDriver,
			Type:             models.TxTypeRepayment,
			AmountNgn:        applied,
			Currency:         "NGN",
			Method:           models.TxMethodPaystack,
			Status:           models.TxStatusCompleted,
			Description:      fmt.Sprintf("weekly repayment on %s contract", contract.AssetType),
			RelatedID:        fmt.Sprintf("%d", contract.ID),
			GatewayReference: paystackRef,
		}).Error; err != nil {
			return err
		}

		if applied > 0 {
			var investments []models.PoolInvestment
			if err := tx.Where("pool_id = ? AND status = ?", contract.PoolID, domain.InvestmentStatusConfirmed).
				Order("amount_ngn DESC").Find(&investments).Error; err != nil {
				return err
			}
			shares := AllocateCredits(applied, investments)
			for _, share := range shares {
				credit := &models.InvestorCredit{
					PaymentID:      p.ID,
					PoolID:         contract.PoolID,
					InvestorUserID: share.InvestorUserID,
					AmountNgn:      share.AmountNgn,
					OwnershipBps:   share.OwnershipBps,
					Status:         domain.CreditStatusPosted,
				}
				if err := tx.Create(credit).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.User{}).Where("id = ?", share.InvestorUserID).
					Updates(map[string]interface{}{
						"available_balance_ngn": gorm.Expr("available_balance_ngn + ?", share.AmountNgn),
						"total_returns_ngn":     gorm.Expr("total_returns_ngn + ?", share.AmountNgn),
					}).Error; err != nil {
					return err
				}
				if err := tx.Create(&models.Transaction{
					UserID:           share.InvestorUserID,
					UserType:         domain.RoleInvestor,
					Type:             models.TxTypeReturn,
					AmountNgn:        share.AmountNgn,
					Currency:         "NGN",
					Method:           models.TxMethodSystem,
					Status:           models.TxStatusCompleted,
					Description:      "repayment share credited",
					RelatedID:        fmt.Sprintf("%d", contract.ID),
					GatewayReference: fmt.Sprintf("%s_%d", paystackRef, share.InvestorUserID),
				}).Error; err != nil {
					return err
				}
			}
			creditedShares = shares
		}

		payment = &p
		contractID = contract.ID
		return nil
	})
	if err != nil {
		return nil, database.Classify(err)
	}

	if s.notifSvc != nil {
		for _, share := range creditedShares {
			s.notifSvc.NotifyRepaymentCredited(share.InvestorUserID, share.AmountNgn, contractID)
		}
		if completedDriverID != 0 {
			s.notifSvc.NotifyContractCompleted(completedDriverID, contractID)
		}
	}
	if len(creditedShares) > 0 {
		log.Printf("[CONTRACT] payment confirmed ref=%s applied=%d credits=%d", paystackRef, payment.AppliedAmountNgn, len(creditedShares))
	}
	return payment, nil
}

// MarkPaymentFailed records a gateway failure for a pending payment.
func (s *ContractService) MarkPaymentFailed(paystackRef, reason string) error {
	p, err := s.payments.GetByPaystackRef(paystackRef)
	if err != nil {
		return database.Classify(err)
	}
	if p.Status == domain.PaymentStatusConfirmed {
		return domain.BusinessRule("payment was already confirmed")
	}
	return s.payments.MarkFailed(paystackRef, reason)
}

func (s *ContractService) ListPayments(driverUserID, contractID uint, limit int) ([]models.DriverPayment, error) {
	return s.payments.ListByDriver(driverUserID, contractID, limit)
}

func (s *ContractService) ListCreditsForPayment(paymentID uint) ([]models.InvestorCredit, error) {
	return s.credits.ListByPayment(paymentID)
}
