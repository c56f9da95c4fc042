package service

import (
	"log"

	"chainmove/internal/domain"
	"chainmove/internal/models"
	"chainmove/internal/repository"
)

type SettingsService struct {
	settings *repository.SettingRepository
}

func NewSettingsService(settings *repository.SettingRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

func (s *SettingsService) Get() (*models.PlatformSetting, error) {
	return s.settings.Get()
}

type UpdateSettingsInput struct {
	MinimumContributionNgn        int64
	PlatformFeeRateBps            int
	DefaultRepaymentDurationWeeks int
	DefaultRoiPercent             float64
	UpdatedByUserID               uint
}

// Update replaces the platform settings singleton after range checks.
// Changes apply to future pools and contracts only.
func (s *SettingsService) Update(in UpdateSettingsInput) (*models.PlatformSetting, error) {
	if in.MinimumContributionNgn < 0 {
		return nil, domain.Validation("minimum_contribution_ngn cannot be negative")
	}
	if in.PlatformFeeRateBps < 0 || in.PlatformFeeRateBps > 10_000 {
		return nil, domain.Validation("platform_fee_rate_bps must be between 0 and 10000")
	}
	if in.DefaultRepaymentDurationWeeks < 1 {
		return nil, domain.Validation("default_repayment_duration_weeks must be at least 1")
	}
	if in.DefaultRoiPercent < 0 || in.DefaultRoiPercent > 100 {
		return nil, domain.Validation("default_roi_percent must be between 0 and 100")
	}

	current, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	current.MinimumContributionNgn = in.MinimumContributionNgn
	current.PlatformFeeRateBps = in.PlatformFeeRateBps
	current.DefaultRepaymentDurationWeeks = in.DefaultRepaymentDurationWeeks
	current.DefaultRoiPercent = in.DefaultRoiPercent
	current.UpdatedByUserID = &in.UpdatedByUserID
	if err := s.settings.Save(current); err != nil {
		return nil, err
	}
	log.Printf("[SETTINGS] updated by user=%d", in.UpdatedByUserID)
	return current, nil
}
