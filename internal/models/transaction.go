package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction is the journal: one row per money movement, regardless of
// which entity it touched. GatewayReference carries the external reference
// (Paystack ref, txRef) when one exists.
type Transaction struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	UserType         string         `gorm:"size:20;not null" json:"user_type"` // investor | driver | admin
	Type             string         `gorm:"size:30;not null;index" json:"type"` // pool_investment, repayment, return, wallet_funding, withdrawal
	AmountNgn        int64          `gorm:"not null" json:"amount_ngn"`
	Currency         string         `gorm:"size:3;not null;default:'NGN'" json:"currency"`
	Method           string         `gorm:"size:30;not null" json:"method"` // internal_wallet, paystack, system
	Status           string         `gorm:"size:20;not null;index" json:"status"` // Pending, Completed, Failed
	Description      string         `gorm:"size:255" json:"description"`
	RelatedID        string         `gorm:"size:64;index" json:"related_id"`
	GatewayReference string         `gorm:"size:160;index" json:"gateway_reference"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Transaction) TableName() string { return "transactions" }

const (
	TxTypePoolInvestment = "pool_investment"
	TxTypeRepayment      = "repayment"
	TxTypeReturn         = "return"
	TxTypeWalletFunding  = "wallet_funding"
	TxTypeWithdrawal     = "withdrawal"

	TxMethodInternalWallet = "internal_wallet"
	TxMethodPaystack       = "paystack"
	TxMethodSystem         = "system"

	TxStatusPending   = "Pending"
	TxStatusCompleted = "Completed"
	TxStatusFailed    = "Failed"
)
