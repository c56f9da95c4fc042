package repository

import (
	"chainmove/internal/models"

	"gorm.io/gorm"
)

type DriverPaymentRepository struct {
	db *gorm.DB
}

func NewDriverPaymentRepository(db *gorm.DB) *DriverPaymentRepository {
	return &DriverPaymentRepository{db: db}
}

func (r *DriverPaymentRepository) Create(p *models.DriverPayment) error {
	return r.db.Create(p).Error
}

func (r *DriverPaymentRepository) GetByPaystackRef(ref string) (*models.DriverPayment, error) {
	var p models.DriverPayment
	if err := r.db.Where("paystack_ref = ?", ref).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *DriverPaymentRepository) Update(p *models.DriverPayment) error {
	return r.db.Save(p).Error
}

func (r *DriverPaymentRepository) ListByDriver(driverUserID uint, contractID uint, limit int) ([]models.DriverPayment, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	q := r.db.Where("driver_user_id = ?", driverUserID)
	if contractID != 0 {
		q = q.Where("contract_id = ?", contractID)
	}
	var rows []models.DriverPayment
	err := q.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *DriverPaymentRepository) MarkFailed(paystackRef, reason string) error {
	return r.db.Model(&models.DriverPayment{}).
		Where("paystack_ref = ?", paystackRef).
		Updates(map[string]interface{}{"status": "FAILED", "failed_reason": reason}).Error
}
