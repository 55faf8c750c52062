package models

import (
	"errors"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCompleted BookingStatus = "completed"
)

// ParseBookingStatus maps a request string to a BookingStatus.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch strings.ToLower(s) {
	case string(BookingPending):
		return BookingPending, nil
	case string(BookingApproved):
		return BookingApproved, nil
	case string(BookingRejected):
		return BookingRejected, nil
	case string(BookingCompleted):
		return BookingCompleted, nil
	default:
		return "", errors.New("invalid booking status")
	}
}

// EquipmentBooking is a borrower's date-ranged request against a piece of
// equipment. Its lifecycle is driven by status transitions, never deletion:
// pending -> approved|rejected, approved -> completed.
type EquipmentBooking struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	EquipmentID uint          `json:"equipment_id" gorm:"not null;index"`
	BorrowerID  uint          `json:"borrower_id" gorm:"not null;index"`
	StartDate   time.Time     `json:"start_date" gorm:"not null"`
	EndDate     time.Time     `json:"end_date" gorm:"not null"`
	Status      BookingStatus `json:"status" gorm:"type:VARCHAR(20);default:'pending'"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Equipment *Equipment    `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
	Borrower  *OwnerSummary `json:"borrower,omitempty" gorm:"-"`
}
