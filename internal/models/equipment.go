package models

import (
	"time"

	"gorm.io/gorm"
)

type Equipment struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OwnerID      uint           `json:"owner_id" gorm:"not null;index"`
	Name         string         `json:"name" gorm:"not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Condition    string         `json:"condition"`
	DailyRate    float64        `json:"daily_rate" gorm:"not null"`
	ImageURL     string         `json:"image_url"`
	Location     string         `json:"location"`
	Availability bool           `json:"availability" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Owner *OwnerSummary `json:"owner,omitempty" gorm:"-"`
}
