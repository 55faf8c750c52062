package repository

import (
	"agromarket/internal/models"

	"gorm.io/gorm"
)

type EquipmentRepository interface {
	Create(equipment *models.Equipment) error
	GetByID(id uint) (*models.Equipment, error)
	GetAvailable() ([]models.Equipment, error)
	GetByLocation(location string) ([]models.Equipment, error)
	GetByOwnerID(ownerID uint) ([]models.Equipment, error)
	IDsByOwner(ownerID uint) ([]uint, error)
	Update(equipment *models.Equipment) error
	Delete(id uint) error
}

type equipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(equipment *models.Equipment) error {
	return r.db.Create(equipment).Error
}

func (r *equipmentRepository) GetByID(id uint) (*models.Equipment, error) {
	var equipment models.Equipment
	err := r.db.First(&equipment, id).Error
	if err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) GetAvailable() ([]models.Equipment, error) {
	var equipment []models.Equipment
	err := r.db.Where("availability = ?", true).Order("created_at DESC").Find(&equipment).Error
	return equipment, err
}

func (r *equipmentRepository) GetByLocation(location string) ([]models.Equipment, error) {
	var equipment []models.Equipment
	err := r.db.
		Where("availability = ?", true).
		Where("LOWER(location) LIKE LOWER(?)", "%"+location+"%").
		Order("created_at DESC").
		Find(&equipment).Error
	return equipment, err
}

func (r *equipmentRepository) GetByOwnerID(ownerID uint) ([]models.Equipment, error) {
	var equipment []models.Equipment
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&equipment).Error
	return equipment, err
}

func (r *equipmentRepository) IDsByOwner(ownerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Equipment{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error
	return ids, err
}

func (r *equipmentRepository) Update(equipment *models.Equipment) error {
	return r.db.Save(equipment).Error
}

func (r *equipmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Equipment{}, id).Error
}
