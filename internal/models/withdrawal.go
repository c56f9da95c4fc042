package models

import (
	"time"

	"gorm.io/gorm"
)

type Withdrawal struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Reference   string         `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	AmountNgn   int64          `gorm:"not null" json:"amount_ngn"`
	BankName    string         `gorm:"size:120" json:"bank_name"`
	AccountNo   string         `gorm:"size:32" json:"account_no"`
	Status      string         `gorm:"size:20;not null;index" json:"status"` // PENDING, PAID, REJECTED
	Reason      string         `gorm:"size:255" json:"reason,omitempty"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Withdrawal) TableName() string { return "withdrawals" }
