package repository

import (
	"agromarket/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(profile *models.Profile) error
	GetByID(id uint) (*models.Profile, error)
	GetByEmail(email string) (*models.Profile, error)
	GetByIDs(ids []uint) ([]models.Profile, error)
	GetFarmers() ([]models.Profile, error)
	Update(profile *models.Profile) error
	Delete(id uint) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

func (r *profileRepository) GetByID(id uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Where("email = ?", email).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByIDs(ids []uint) ([]models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var profiles []models.Profile
	err := r.db.Where("id IN ?", ids).Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) GetFarmers() ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Where("role = ?", string(models.RoleFarmer)).Order("name ASC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

func (r *profileRepository) Delete(id uint) error {
	return r.db.Delete(&models.Profile{}, id).Error
}
