package models

import (
	"time"

	"gorm.io/gorm"
)

// InvestorCredit is one investor's proportional share of a confirmed driver
// payment. The compound unique index on (payment_id, investor_user_id) is
// the at-most-once guard for the credit fan-out: re-running distribution for
// a payment hits the index instead of double-crediting.
type InvestorCredit struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	PaymentID      uint           `gorm:"not null;uniqueIndex:idx_investor_credits_payment_investor" json:"payment_id"`
	PoolID         uint           `gorm:"not null;index" json:"pool_id"`
	InvestorUserID uint           `gorm:"not null;uniqueIndex:idx_investor_credits_payment_investor" json:"investor_user_id"`
	AmountNgn      int64          `gorm:"not null" json:"amount_ngn"`
	OwnershipBps   int            `gorm:"not null" json:"ownership_bps"`
	Status         string         `gorm:"size:20;not null;default:'POSTED'" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Payment  DriverPayment  `gorm:"foreignKey:PaymentID" json:"-"`
	Pool     InvestmentPool `gorm:"foreignKey:PoolID" json:"-"`
	Investor User           `gorm:"foreignKey:InvestorUserID" json:"-"`
}

func (InvestorCredit) TableName() string { return "investor_credits" }
