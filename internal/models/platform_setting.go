package models

import (
	"time"

	"gorm.io/gorm"
)

// PlatformSetting is a process-wide singleton of financial constants,
// keyed by SingletonKey = "default". Writable only by admins; last writer
// wins.
type PlatformSetting struct {
	ID                            uint           `gorm:"primaryKey" json:"id"`
	SingletonKey                  string         `gorm:"size:20;uniqueIndex;not null;default:'default'" json:"-"`
	MinimumContributionNgn        int64          `gorm:"not null;default:5000" json:"minimum_contribution_ngn"`
	PlatformFeeRateBps            int            `gorm:"not null;default:250" json:"platform_fee_rate_bps"`
	DefaultRepaymentDurationWeeks int            `gorm:"not null;default:52" json:"default_repayment_duration_weeks"`
	DefaultRoiPercent             float64        `gorm:"not null;default:24" json:"default_roi_percent"`
	UpdatedByUserID               *uint          `json:"updated_by_user_id"`
	CreatedAt                     time.Time      `json:"created_at"`
	UpdatedAt                     time.Time      `json:"updated_at"`
	DeletedAt                     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PlatformSetting) TableName() string { return "platform_settings" }

const PlatformSettingKey = "default"
