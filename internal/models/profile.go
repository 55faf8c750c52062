package models

import (
	"time"

	"gorm.io/gorm"
)

type Profile struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"unique;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"default:'consumer'"` // farmer, consumer
	Farm         string         `json:"farm"`
	Location     string         `json:"location"`
	Description  string         `json:"description" gorm:"type:text"`
	Photo        string         `json:"photo"`
	Rating       float64        `json:"rating" gorm:"default:0"`
	Reviews      int            `json:"reviews" gorm:"default:0"`
	Verified     bool           `json:"verified" gorm:"default:false"`
	Specialties  string         `json:"specialties"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type ProfileRole string

const (
	RoleFarmer   ProfileRole = "farmer"
	RoleConsumer ProfileRole = "consumer"
)

// FarmerSummary is the slice of a farmer profile attached to products
// and cart lines.
type FarmerSummary struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Farm     string  `json:"farm"`
	Verified bool    `json:"verified"`
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
	Photo    string  `json:"photo"`
}

// OwnerSummary is the equipment-owner slice shown on listings and bookings.
type OwnerSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Farm     string `json:"farm"`
	Location string `json:"location"`
	Verified bool   `json:"verified"`
	Photo    string `json:"photo"`
}

// ConsumerSummary is the purchaser slice attached to a farmer's order view.
type ConsumerSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

func (p *Profile) FarmerSummary() FarmerSummary {
	return FarmerSummary{
		ID:       p.ID,
		Name:     p.Name,
		Farm:     p.Farm,
		Verified: p.Verified,
		Rating:   p.Rating,
		Reviews:  p.Reviews,
		Photo:    p.Photo,
	}
}

func (p *Profile) OwnerSummary() OwnerSummary {
	return OwnerSummary{
		ID:       p.ID,
		Name:     p.Name,
		Farm:     p.Farm,
		Location: p.Location,
		Verified: p.Verified,
		Photo:    p.Photo,
	}
}

func (p *Profile) ConsumerSummary() ConsumerSummary {
	return ConsumerSummary{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Photo: p.Photo,
	}
}
