package models

import "time"

// CartItem is one (user, product) line. The unique index keeps a single
// line per pair; adding the same product again bumps Quantity instead.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Product may be nil when the referenced product was deleted after the
	// line was added. Such lines are shown but excluded from totals.
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
