package service

import (
	"fmt"
	"log"

	"chainmove/internal/models"
	"chainmove/internal/repository"
)

type notificationStore interface {
	Create(n *models.Notification) error
}

type poolInvestmentSource interface {
	ConfirmedInvestments(poolID uint) ([]models.PoolInvestment, error)
}

// NotificationService persists in-app notifications. Delivery is best-effort:
// a failed insert is logged and never fails the caller's transaction.
type NotificationService struct {
	notifications notificationStore
	pools         poolInvestmentSource
}

func NewNotificationService(notifications *repository.NotificationRepository, pools *repository.PoolRepository) *NotificationService {
	return &NotificationService{notifications: notifications, pools: pools}
}

func (s *NotificationService) notify(userID uint, typ, title, body, relatedID string) {
	n := &models.Notification{
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Body:      body,
		RelatedID: relatedID,
	}
	if err := s.notifications.Create(n); err != nil {
		log.Printf("[NOTIFY] failed to persist %s notification for user %d: %v", typ, userID, err)
	}
}

func (s *NotificationService) NotifyInvestmentConfirmed(userID uint, inv *models.PoolInvestment) {
	s.notify(userID, "investment_confirmed",
		"Investment confirmed",
		fmt.Sprintf("Your investment of NGN %d has been confirmed.", inv.AmountNgn),
		fmt.Sprintf("%d", inv.PoolID))
}

// NotifyPoolFunded notifies every investor holding a confirmed stake in the
// pool, once each.
func (s *NotificationService) NotifyPoolFunded(poolID uint) {
	investments, err := s.pools.ConfirmedInvestments(poolID)
	if err != nil {
		log.Printf("[NOTIFY] failed to load investors for pool %d: %v", poolID, err)
		return
	}
	seen := make(map[uint]bool, len(investments))
	for _, inv := range investments {
		if seen[inv.UserID] {
			continue
		}
		seen[inv.UserID] = true
		s.notify(inv.UserID, "pool_funded",
			"Pool fully funded",
			"A pool you invested in has reached its funding target.",
			fmt.Sprintf("%d", poolID))
	}
}

func (s *NotificationService) NotifyRepaymentCredited(investorUserID uint, amountNgn int64, contractID uint) {
	s.notify(investorUserID, "repayment_received",
		"Repayment received",
		fmt.Sprintf("NGN %d has been credited to your wallet from a driver repayment.", amountNgn),
		fmt.Sprintf("%d", contractID))
}

func (s *NotificationService) NotifyContractCompleted(driverUserID uint, contractID uint) {
	s.notify(driverUserID, "contract_completed",
		"Contract completed",
		"Congratulations, your hire-purchase contract is fully paid off.",
		fmt.Sprintf("%d", contractID))
}

func (s *NotificationService) NotifyWithdrawalUpdate(userID uint, w *models.Withdrawal) {
	s.notify(userID, "withdrawal_update",
		"Withdrawal update",
		fmt.Sprintf("Your withdrawal of NGN %d is now %s.", w.AmountNgn, w.Status),
		fmt.Sprintf("%d", w.ID))
}
