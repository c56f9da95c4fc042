package models

import (
	"time"

	"gorm.io/gorm"
)

// HirePurchaseContract is the repayment schedule tying a driver to a funded
// pool. totalPaidNgn never exceeds totalPayableNgn; status flips to
// COMPLETED exactly when they meet.
type HirePurchaseContract struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	DriverUserID       uint           `gorm:"not null;index" json:"driver_user_id"`
	PoolID             uint           `gorm:"not null;index" json:"pool_id"`
	AssetType          string         `gorm:"size:20;not null" json:"asset_type"`
	VehicleDisplayName string         `gorm:"size:120" json:"vehicle_display_name"`
	PrincipalNgn       int64          `gorm:"not null" json:"principal_ngn"`
	DepositNgn         int64          `gorm:"not null;default:0" json:"deposit_ngn"`
	TotalPayableNgn    int64          `gorm:"not null" json:"total_payable_ngn"`
	DurationWeeks      int            `gorm:"not null" json:"duration_weeks"`
	WeeklyPaymentNgn   int64          `gorm:"not null" json:"weekly_payment_ngn"`
	TotalPaidNgn       int64          `gorm:"not null;default:0" json:"total_paid_ngn"`
	Status             string         `gorm:"size:20;not null;index;default:'ACTIVE'" json:"status"` // ACTIVE, COMPLETED, DEFAULTED
	StartDate          time.Time      `gorm:"not null" json:"start_date"`
	NextDueDate        *time.Time     `json:"next_due_date"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Driver User           `gorm:"foreignKey:DriverUserID" json:"-"`
	Pool   InvestmentPool `gorm:"foreignKey:PoolID" json:"-"`
}

func (HirePurchaseContract) TableName() string { return "hire_purchase_contracts" }

func (c *HirePurchaseContract) RemainingBalanceNgn() int64 {
	if r := c.TotalPayableNgn - c.TotalPaidNgn; r > 0 {
		return r
	}
	return 0
}

func (c *HirePurchaseContract) ProgressRatio() float64 {
	if c.TotalPayableNgn <= 0 {
		return 0
	}
	ratio := float64(c.TotalPaidNgn) / float64(c.TotalPayableNgn)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// NextPaymentAmountNgn is the regular installment capped at what is left.
func (c *HirePurchaseContract) NextPaymentAmountNgn() int64 {
	if rem := c.RemainingBalanceNgn(); rem < c.WeeklyPaymentNgn {
		return rem
	}
	return c.WeeklyPaymentNgn
}
