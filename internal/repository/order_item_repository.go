package repository

import (
	"agromarket/internal/models"

	"gorm.io/gorm"
)

type OrderItemRepository interface {
	GetByID(id uint) (*models.OrderItem, error)
	GetByOrderID(orderID uint) ([]models.OrderItem, error)
	GetByProductIDs(productIDs []uint) ([]models.OrderItem, error)
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) GetByID(id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderItemRepository) GetByOrderID(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.Preload("Product").Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

func (r *orderItemRepository) GetByProductIDs(productIDs []uint) ([]models.OrderItem, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var items []models.OrderItem
	err := r.db.
		Preload("Product").
		Where("product_id IN ?", productIDs).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
