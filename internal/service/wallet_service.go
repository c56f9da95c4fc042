package service

import (
	"fmt"
	"log"
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

type WalletService struct {
	db           *gorm.DB
	users        *repository.UserRepository
	transactions *repository.TransactionRepository
	credits      *repository.CreditRepository
	withdrawals  *repository.WithdrawalRepository
	notifSvc     *NotificationService
}

func NewWalletService(db *gorm.DB, users *repository.UserRepository, transactions *repository.TransactionRepository, credits *repository.CreditRepository, withdrawals *repository.WithdrawalRepository, notifSvc *NotificationService) *WalletService {
	return &WalletService{
		db:           db,
		users:        users,
		transactions: transactions,
		credits:      credits,
		withdrawals:  withdrawals,
		notifSvc:     notifSvc,
	}
}

type WalletSummary struct {
	AvailableBalanceNgn int64 `json:"available_balance_ngn"`
	TotalInvestedNgn    int64 `json:"total_invested_ngn"`
	TotalReturnsNgn     int64 `json:"total_returns_ngn"`
	LifetimeCreditsNgn  int64 `json:"lifetime_credits_ngn"`
}

func (s *WalletService) Summary(userID uint) (*WalletSummary, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, database.Classify(err)
	}
	creditsTotal, err := s.credits.SumByInvestor(userID)
	if err != nil {
		return nil, err
	}
	return &WalletSummary{
		AvailableBalanceNgn: user.AvailableBalanceNgn,
		TotalInvestedNgn:    user.TotalInvestedNgn,
		TotalReturnsNgn:     user.TotalReturnsNgn,
		LifetimeCreditsNgn:  creditsTotal,
	}, nil
}

func (s *WalletService) Transactions(userID uint, limit int) ([]models.Transaction, error) {
	return s.transactions.ListByUser(userID, limit)
}

func (s *WalletService) Credits(userID uint, limit int) ([]models.InvestorCredit, error) {
	return s.credits.ListByInvestor(userID, limit)
}

// Fund credits a confirmed gateway top-up to the user's wallet. Idempotent
// on the gateway reference: a replayed webhook is a no-op.
func (s *WalletService) Fund(userID uint, amountNgn int64, gatewayRef string) error {
	if amountNgn <= 0 {
		return domain.Validation("amount must be greater than zero")
	}
	gatewayRef = strings.TrimSpace(gatewayRef)
	if gatewayRef == "" {
		return domain.Validation("gateway reference is required")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Transaction{}).
			Where("gateway_reference = ? AND type = ? AND status = ?",
				gatewayRef, models.TxTypeWalletFunding, models.TxStatusCompleted).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("available_balance_ngn", gorm.Expr("available_balance_ngn + ?", amountNgn)).Error; err != nil {
			return err
		}
		return tx.Create(&models.Transaction{
			UserID:           user.ID,
			UserType:         user.Role,
			Type:             models.TxTypeWalletFunding,
			AmountNgn:        amountNgn,
			Currency:         "NGN",
			Method:           models.TxMethodPaystack,
			Status:           models.TxStatusCompleted,
			Description:      "wallet top-up",
			GatewayReference: gatewayRef,
		}).Error
	})
	if err != nil {
		return database.Classify(err)
	}
	log.Printf("[WALLET] funded user=%d amount=%d ref=%s", userID, amountNgn, gatewayRef)
	return nil
}

// RequestWithdrawal reserves the amount by debiting the wallet up front; a
// rejection refunds it.
func (s *WalletService) RequestWithdrawal(userID uint, amountNgn int64, bankName, accountNo string) (*models.Withdrawal, error) {
	if amountNgn <= 0 {
		return nil, domain.Validation("amount must be greater than zero")
	}
	if strings.TrimSpace(bankName) == "" || strings.TrimSpace(accountNo) == "" {
		return nil, domain.Validation("bank name and account number are required")
	}

	var withdrawal *models.Withdrawal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}
		if amountNgn > user.AvailableBalanceNgn {
			return domain.BusinessRule("insufficient internal wallet balance")
		}
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("available_balance_ngn", gorm.Expr("available_balance_ngn - ?", amountNgn)).Error; err != nil {
			return err
		}
		withdrawal = &models.Withdrawal{
			UserID:    user.ID,
			Reference: fmt.Sprintf("wd_%s", uuid.NewString()),
			AmountNgn: amountNgn,
			BankName:  strings.TrimSpace(bankName),
			AccountNo: strings.TrimSpace(accountNo),
			Status:    domain.WithdrawalStatusPending,
		}
		if err := tx.Create(withdrawal).Error; err != nil {
			return err
		}
		return tx.Create(&models.Transaction{
			UserID:           user.ID,
			UserType:         user.Role,
			Type:             models.TxTypeWithdrawal,
			AmountNgn:        amountNgn,
			Currency:         "NGN",
			Method:           models.TxMethodInternalWallet,
			Status:           models.TxStatusPending,
			Description:      "withdrawal requested",
			RelatedID:        withdrawal.Reference,
			GatewayReference: withdrawal.Reference,
		}).Error
	})
	if err != nil {
		return nil, database.Classify(err)
	}
	log.Printf("[WALLET] withdrawal requested user=%d amount=%d ref=%s", userID, amountNgn, withdrawal.Reference)
	return withdrawal, nil
}

func (s *WalletService) ListWithdrawals(userID uint) ([]models.Withdrawal, error) {
	return s.withdrawals.ListByUser(userID)
}

func (s *WalletService) ListPendingWithdrawals() ([]models.Withdrawal, error) {
	return s.withdrawals.ListPending()
}

// SettleWithdrawal is the admin decision: approve marks the payout PAID,
// reject refunds the reserved amount to the wallet.
func (s *WalletService) SettleWithdrawal(withdrawalID uint, approve bool, reason string) (*models.Withdrawal, error) {
	var withdrawal *models.Withdrawal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var w models.Withdrawal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, withdrawalID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}
		if w.Status != domain.WithdrawalStatusPending {
			return domain.BusinessRule("withdrawal has already been settled")
		}
		now := time.Now().UTC()
		if approve {
			w.Status = domain.WithdrawalStatusPaid
			w.CompletedAt = &now
			if err := tx.Model(&models.Transaction{}).
				Where("gateway_reference = ? AND type = ?", w.Reference, models.TxTypeWithdrawal).
				Update("status", models.TxStatusCompleted).Error; err != nil {
				return err
			}
		} else {
			w.Status = domain.WithdrawalStatusRejected
			w.Reason = strings.TrimSpace(reason)
			w.CompletedAt = &now
			if err := tx.Model(&models.User{}).Where("id = ?", w.UserID).
				Update("available_balance_ngn", gorm.Expr("available_balance_ngn + ?", w.AmountNgn)).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Transaction{}).
				Where("gateway_reference = ? AND type = ?", w.Reference, models.TxTypeWithdrawal).
				Update("status", models.TxStatusFailed).Error; err != nil {
				return err
			}
		}
		if err := tx.Save(&w).Error; err != nil {
			return err
		}
		withdrawal = &w
		return nil
	})
	if err != nil {
		return nil, database.Classify(err)
	}
	if s.notifSvc != nil {
		s.notifSvc.NotifyWithdrawalUpdate(withdrawal.UserID, withdrawal)
	}
	return withdrawal, nil
}
