package models

import (
	"time"

	"chainmove/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"size:120;not null" json:"name"`
	Email              string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash       string         `gorm:"size:255" json:"-"`
	Role               string         `gorm:"size:20;not null;index" json:"role"` // investor | driver | admin
	Phone              string         `gorm:"size:32" json:"phone"`
	KYCVerified        bool           `gorm:"default:false" json:"kyc_verified"`
	AvailableBalanceNgn int64         `gorm:"not null;default:0" json:"available_balance_ngn"`
	TotalInvestedNgn   int64          `gorm:"not null;default:0" json:"total_invested_ngn"`
	TotalReturnsNgn    int64          `gorm:"not null;default:0" json:"total_returns_ngn"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool    { return u.Role == domain.RoleAdmin }
func (u *User) IsInvestor() bool { return u.Role == domain.RoleInvestor }
func (u *User) IsDriver() bool   { return u.Role == domain.RoleDriver }

// CanInvest reports whether the user's role allows contributing to pools.
func (u *User) CanInvest() bool {
	return u.Role == domain.RoleInvestor || u.Role == domain.RoleAdmin
}
