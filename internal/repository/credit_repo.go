package repository

import (
	"chainmove/internal/models"

	"gorm.io/gorm"
)

type CreditRepository struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) *CreditRepository {
	return &CreditRepository{db: db}
}

func (r *CreditRepository) CountByPayment(paymentID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.InvestorCredit{}).Where("payment_id = ?", paymentID).Count(&n).Error
	return n, err
}

func (r *CreditRepository) ListByPayment(paymentID uint) ([]models.InvestorCredit, error) {
	var rows []models.InvestorCredit
	err := r.db.Where("payment_id = ?", paymentID).Find(&rows).Error
	return rows, err
}

func (r *CreditRepository) ListByInvestor(investorUserID uint, limit int) ([]models.InvestorCredit, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var rows []models.InvestorCredit
	err := r.db.Where("investor_user_id = ?", investorUserID).
		Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *CreditRepository) SumByInvestor(investorUserID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.InvestorCredit{}).
		Where("investor_user_id = ?", investorUserID).
		Select("COALESCE(SUM(amount_ngn), 0)").Scan(&total).Error
	return total, err
}
