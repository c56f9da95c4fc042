package models

import (
	"time"

	"gorm.io/gorm"
)

// InvestmentPool is one fundraising campaign for a single vehicle asset.
// currentRaisedNgn only moves up while the pool is OPEN and never exceeds
// targetAmountNgn; status moves OPEN -> FUNDED -> CLOSED, forward only.
type InvestmentPool struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	AssetType         string         `gorm:"size:20;not null;index" json:"asset_type"` // SHUTTLE | KEKE
	AssetPriceNgn     int64          `gorm:"not null" json:"asset_price_ngn"`
	TargetAmountNgn   int64          `gorm:"not null" json:"target_amount_ngn"`
	MinContributionNgn int64         `gorm:"not null;default:5000" json:"min_contribution_ngn"`
	CurrentRaisedNgn  int64          `gorm:"not null;default:0" json:"current_raised_ngn"`
	InvestorCount     int            `gorm:"not null;default:0" json:"investor_count"`
	Status            string         `gorm:"size:20;not null;index;default:'OPEN'" json:"status"` // OPEN, FUNDED, CLOSED
	Description       string         `gorm:"size:600" json:"description"`
	CreatedByUserID   uint           `gorm:"not null;index" json:"created_by_user_id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedBy User `gorm:"foreignKey:CreatedByUserID" json:"-"`
}

func (InvestmentPool) TableName() string { return "investment_pools" }

func (p *InvestmentPool) RemainingAmountNgn() int64 {
	if r := p.TargetAmountNgn - p.CurrentRaisedNgn; r > 0 {
		return r
	}
	return 0
}

func (p *InvestmentPool) ProgressRatio() float64 {
	if p.TargetAmountNgn <= 0 {
		return 0
	}
	return float64(p.CurrentRaisedNgn) / float64(p.TargetAmountNgn)
}
