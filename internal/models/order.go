package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	OrderRef    string         `json:"order_ref" gorm:"unique;not null"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	TotalAmount float64        `json:"total_amount" gorm:"not null"`
	Status      OrderStatus    `json:"status" gorm:"type:VARCHAR(20);default:'completed'"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Consumer *ConsumerSummary `json:"consumer,omitempty" gorm:"-"`
}

type OrderStatus string

const (
	// Checkout is synchronous; there is no payment-authorization step, so
	// orders are written as completed.
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)
