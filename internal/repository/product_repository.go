package repository

import (
	"agromarket/internal/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetAll() ([]models.Product, error)
	GetByFarmerID(farmerID uint) ([]models.Product, error)
	IDsByFarmer(farmerID uint) ([]uint, error)
	Update(product *models.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepository) GetByFarmerID(farmerID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("farmer_id = ?", farmerID).Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepository) IDsByFarmer(farmerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Product{}).Where("farmer_id = ?", farmerID).Pluck("id", &ids).Error
	return ids, err
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}
