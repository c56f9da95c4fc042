package repository

import (
	"errors"

	"chainmove/internal/models"

	"gorm.io/gorm"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the settings singleton, falling back to model defaults when
// the row has not been seeded yet.
func (r *SettingRepository) Get() (*models.PlatformSetting, error) {
	var s models.PlatformSetting
	err := r.db.Where("singleton_key = ?", models.PlatformSettingKey).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.PlatformSetting{
			SingletonKey:                  models.PlatformSettingKey,
			MinimumContributionNgn:        5_000,
			PlatformFeeRateBps:            250,
			DefaultRepaymentDurationWeeks: 52,
			DefaultRoiPercent:             24,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save upserts the singleton row. Last writer wins.
func (r *SettingRepository) Save(s *models.PlatformSetting) error {
	var existing models.PlatformSetting
	err := r.db.Where("singleton_key = ?", models.PlatformSettingKey).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.SingletonKey = models.PlatformSettingKey
		return r.db.Create(s).Error
	}
	if err != nil {
		return err
	}
	s.ID = existing.ID
	s.SingletonKey = models.PlatformSettingKey
	return r.db.Save(s).Error
}
