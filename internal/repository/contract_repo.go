package repository

import (
	"chainmove/internal/domain"
	"chainmove/internal/models"

	"gorm.io/gorm"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(c *models.HirePurchaseContract) error {
	return r.db.Create(c).Error
}

func (r *ContractRepository) GetByID(id uint) (*models.HirePurchaseContract, error) {
	var c models.HirePurchaseContract
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetForDriver returns the driver's ACTIVE contract, or the most recently
// settled one when no contract is active.
func (r *ContractRepository) GetForDriver(driverUserID uint) (*models.HirePurchaseContract, error) {
	var c models.HirePurchaseContract
	err := r.db.Where("driver_user_id = ? AND status = ?", driverUserID, domain.ContractStatusActive).
		Order("created_at DESC").First(&c).Error
	if err == nil {
		return &c, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	err = r.db.Where("driver_user_id = ? AND status IN ?", driverUserID,
		[]string{domain.ContractStatusCompleted, domain.ContractStatusDefaulted}).
		Order("updated_at DESC").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) HasActiveContract(driverUserID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.HirePurchaseContract{}).
		Where("driver_user_id = ? AND status = ?", driverUserID, domain.ContractStatusActive).
		Count(&n).Error
	return n > 0, err
}

func (r *ContractRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.db.Model(&models.HirePurchaseContract{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
