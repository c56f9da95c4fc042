package repository

import (
	"chainmove/internal/models"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(v *models.Vehicle) error {
	return r.db.Create(v).Error
}

func (r *VehicleRepository) GetByID(id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := r.db.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) Update(v *models.Vehicle) error {
	return r.db.Save(v).Error
}

func (r *VehicleRepository) List(assetType, status string) ([]models.Vehicle, error) {
	q := r.db.Model(&models.Vehicle{})
	if assetType != "" {
		q = q.Where("asset_type = ?", assetType)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var rows []models.Vehicle
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}
