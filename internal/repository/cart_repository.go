package repository

import (
	"agromarket/internal/models"

	"gorm.io/gorm"
)

type CartRepository interface {
	Create(item *models.CartItem) error
	GetByID(id uint) (*models.CartItem, error)
	GetByUserID(userID uint) ([]models.CartItem, error)
	GetByUserAndProduct(userID, productID uint) (*models.CartItem, error)
	Update(item *models.CartItem) error
	Delete(id uint) error
	DeleteByUserID(userID uint) error
	DistinctUserIDsByFarmer(farmerID uint) ([]uint, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

func (r *cartRepository) GetByID(id uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) GetByUserID(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *cartRepository) GetByUserAndProduct(userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Update(item *models.CartItem) error {
	return r.db.Save(item).Error
}

func (r *cartRepository) Delete(id uint) error {
	return r.db.Delete(&models.CartItem{}, id).Error
}

func (r *cartRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// DistinctUserIDsByFarmer returns ids of users whose carts hold at least one
// of the farmer's products.
func (r *cartRepository) DistinctUserIDsByFarmer(farmerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.CartItem{}).
		Distinct("cart_items.user_id").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("products.farmer_id = ?", farmerID).
		Pluck("cart_items.user_id", &ids).Error
	return ids, err
}
