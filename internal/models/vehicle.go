package models

import (
	"time"

	"gorm.io/gorm"
)

// Vehicle is a marketplace listing for an asset a pool can fund.
type Vehicle struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:120;not null" json:"name"`
	AssetType    string         `gorm:"size:20;not null;index" json:"asset_type"` // SHUTTLE | KEKE
	PriceNgn     int64          `gorm:"not null" json:"price_ngn"`
	Description  string         `gorm:"size:600" json:"description"`
	ImageURL     string         `gorm:"size:512" json:"image_url"`
	Status       string         `gorm:"size:20;not null;index;default:'AVAILABLE'" json:"status"` // AVAILABLE, RESERVED, ASSIGNED
	AddedByUserID uint          `gorm:"not null;index" json:"added_by_user_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	AddedBy User `gorm:"foreignKey:AddedByUserID" json:"-"`
}

func (Vehicle) TableName() string { return "vehicles" }
