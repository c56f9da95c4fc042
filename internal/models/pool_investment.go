package models

import (
	"time"

	"gorm.io/gorm"
)

// PoolInvestment is one investor's contribution event to one pool. Rows are
// immutable once CONFIRMED; further contributions are new rows. TxRef is the
// idempotency key for the invest operation.
type PoolInvestment struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	PoolID         uint           `gorm:"not null;index:idx_pool_investments_pool_user" json:"pool_id"`
	UserID         uint           `gorm:"not null;index:idx_pool_investments_pool_user" json:"user_id"`
	AmountNgn      int64          `gorm:"not null" json:"amount_ngn"`
	OwnershipUnits int64          `gorm:"not null" json:"ownership_units"`
	OwnershipBps   int            `gorm:"not null" json:"ownership_bps"`
	TxRef          string         `gorm:"size:128;uniqueIndex;not null" json:"tx_ref"`
	Status         string         `gorm:"size:20;not null;index;default:'CONFIRMED'" json:"status"` // PENDING, CONFIRMED, FAILED
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Pool InvestmentPool `gorm:"foreignKey:PoolID" json:"-"`
	User User           `gorm:"foreignKey:UserID" json:"-"`
}

func (PoolInvestment) TableName() string { return "pool_investments" }
