package repository

import (
	"chainmove/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(t *models.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) ListByUser(userID uint, limit int) ([]models.Transaction, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var rows []models.Transaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

// HasCompletedByReference reports whether a Completed journal row already
// exists for a gateway reference. The webhook uses it as its replay gate.
func (r *TransactionRepository) HasCompletedByReference(reference string) (bool, error) {
	var n int64
	err := r.db.Model(&models.Transaction{}).
		Where("gateway_reference = ? AND status = ?", reference, models.TxStatusCompleted).
		Count(&n).Error
	return n > 0, err
}

func (r *TransactionRepository) SumCompletedByType(txType string) (int64, error) {
	var total int64
	err := r.db.Model(&models.Transaction{}).
		Where("type = ? AND status = ?", txType, models.TxStatusCompleted).
		Select("COALESCE(SUM(amount_ngn), 0)").Scan(&total).Error
	return total, err
}
