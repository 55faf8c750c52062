package repository

import (
	"agromarket/internal/models"

	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(booking *models.EquipmentBooking) error
	GetByID(id uint) (*models.EquipmentBooking, error)
	GetByBorrowerID(borrowerID uint) ([]models.EquipmentBooking, error)
	GetByEquipmentIDs(equipmentIDs []uint) ([]models.EquipmentBooking, error)
	Update(booking *models.EquipmentBooking) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(booking *models.EquipmentBooking) error {
	return r.db.Create(booking).Error
}

func (r *bookingRepository) GetByID(id uint) (*models.EquipmentBooking, error) {
	var booking models.EquipmentBooking
	err := r.db.Preload("Equipment").First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetByBorrowerID(borrowerID uint) ([]models.EquipmentBooking, error) {
	var bookings []models.EquipmentBooking
	err := r.db.
		Preload("Equipment").
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) GetByEquipmentIDs(equipmentIDs []uint) ([]models.EquipmentBooking, error) {
	if len(equipmentIDs) == 0 {
		return nil, nil
	}
	var bookings []models.EquipmentBooking
	err := r.db.
		Preload("Equipment").
		Where("equipment_id IN ?", equipmentIDs).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) Update(booking *models.EquipmentBooking) error {
	return r.db.Save(booking).Error
}
