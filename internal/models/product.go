package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	FarmerID      uint           `json:"farmer_id" gorm:"not null;index"`
	Name          string         `json:"name" gorm:"not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Price         float64        `json:"price" gorm:"not null"`
	Unit          string         `json:"unit" gorm:"default:'kg'"`
	Category      string         `json:"category"`
	StockQuantity int            `json:"stock_quantity" gorm:"default:0"`
	ImageURL      string         `json:"image_url"`
	EcoCertified  bool           `json:"eco_certified" gorm:"default:false"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Farmer *FarmerSummary `json:"farmer,omitempty" gorm:"-"`
}
