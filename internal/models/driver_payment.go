package models

import (
	"time"

	"gorm.io/gorm"
)

// DriverPayment is a single repayment event from a driver against a
// contract. PaystackRef is globally unique so a replayed gateway webhook can
// never double-process the same charge. AppliedAmountNgn is the portion that
// actually reduced the contract balance (never more than AmountNgn).
type DriverPayment struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	ContractID       uint           `gorm:"not null;index" json:"contract_id"`
	DriverUserID     uint           `gorm:"not null;index" json:"driver_user_id"`
	AmountNgn        int64          `gorm:"not null" json:"amount_ngn"`
	AppliedAmountNgn int64          `gorm:"not null;default:0" json:"applied_amount_ngn"`
	Method           string         `gorm:"size:20;not null;default:'PAYSTACK'" json:"method"`
	PaystackRef      string         `gorm:"size:128;uniqueIndex;not null" json:"paystack_ref"`
	PayerEmail       string         `gorm:"size:255" json:"payer_email"`
	Channel          string         `gorm:"size:40" json:"channel"`
	Status           string         `gorm:"size:20;not null;index;default:'PENDING'" json:"status"` // PENDING, CONFIRMED, FAILED
	FailedReason     string         `gorm:"size:255" json:"failed_reason,omitempty"`
	ConfirmedAt      *time.Time     `json:"confirmed_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Contract HirePurchaseContract `gorm:"foreignKey:ContractID" json:"-"`
	Driver   User                 `gorm:"foreignKey:DriverUserID" json:"-"`
}

func (DriverPayment) TableName() string { return "driver_payments" }
