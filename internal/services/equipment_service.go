package services

import (
	"errors"
	"fmt"
	"time"

	"agromarket/internal/models"
	"agromarket/internal/repository"

	"gorm.io/gorm"
)

type EquipmentInput struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Condition    string  `json:"condition"`
	DailyRate    float64 `json:"daily_rate" binding:"required,min=0"`
	ImageURL     string  `json:"image_url"`
	Location     string  `json:"location"`
	Availability bool    `json:"availability"`
}

type EquipmentService interface {
	CreateEquipment(ownerID uint, input EquipmentInput) (*models.Equipment, error)
	UpdateEquipment(actorID, equipmentID uint, input EquipmentInput) (*models.Equipment, error)
	DeleteEquipment(actorID, equipmentID uint) error
	GetEquipmentByID(id uint) (*models.Equipment, error)
	ListAvailable() ([]models.Equipment, error)
	ListByLocation(location string) ([]models.Equipment, error)
	ListByOwner(ownerID uint) ([]models.Equipment, error)
}

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	profileRepo   repository.ProfileRepository
}

func NewEquipmentService(
	equipmentRepo repository.EquipmentRepository,
	profileRepo repository.ProfileRepository,
) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo, profileRepo: profileRepo}
}

func (s *equipmentService) CreateEquipment(ownerID uint, input EquipmentInput) (*models.Equipment, error) {
	equipment := &models.Equipment{
		OwnerID:      ownerID,
		Name:         input.Name,
		Description:  input.Description,
		Condition:    input.Condition,
		DailyRate:    input.DailyRate,
		ImageURL:     input.ImageURL,
		Location:     input.Location,
		Availability: input.Availability,
	}
	if err := s.equipmentRepo.Create(equipment); err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}
	return equipment, nil
}

// UpdateEquipment rejects actors other than the listing's owner.
func (s *equipmentService) UpdateEquipment(actorID, equipmentID uint, input EquipmentInput) (*models.Equipment, error) {
	equipment, err := s.ownedEquipment(actorID, equipmentID)
	if err != nil {
		return nil, err
	}

	equipment.Name = input.Name
	equipment.Description = input.Description
	equipment.Condition = input.Condition
	equipment.DailyRate = input.DailyRate
	equipment.ImageURL = input.ImageURL
	equipment.Location = input.Location
	equipment.Availability = input.Availability
	equipment.UpdatedAt = time.Now()

	if err := s.equipmentRepo.Update(equipment); err != nil {
		return nil, fmt.Errorf("failed to update equipment: %w", err)
	}
	return equipment, nil
}

func (s *equipmentService) DeleteEquipment(actorID, equipmentID uint) error {
	if _, err := s.ownedEquipment(actorID, equipmentID); err != nil {
		return err
	}
	if err := s.equipmentRepo.Delete(equipmentID); err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	return nil
}

func (s *equipmentService) GetEquipmentByID(id uint) (*models.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}
	single := []models.Equipment{*equipment}
	if err := s.attachOwners(single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

func (s *equipmentService) ListAvailable() ([]models.Equipment, error) {
	equipment, err := s.equipmentRepo.GetAvailable()
	if err != nil {
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}
	if err := s.attachOwners(equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *equipmentService) ListByLocation(location string) ([]models.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByLocation(location)
	if err != nil {
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}
	if err := s.attachOwners(equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *equipmentService) ListByOwner(ownerID uint) ([]models.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByOwnerID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}
	return equipment, nil
}

func (s *equipmentService) ownedEquipment(actorID, equipmentID uint) (*models.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByID(equipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}
	if equipment.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return equipment, nil
}

func (s *equipmentService) attachOwners(equipment []models.Equipment) error {
	var ownerIDs []uint
	for i := range equipment {
		ownerIDs = append(ownerIDs, equipment[i].OwnerID)
	}
	if len(ownerIDs) == 0 {
		return nil
	}
	profiles, err := s.profileRepo.GetByIDs(dedupeIDs(ownerIDs))
	if err != nil {
		return fmt.Errorf("failed to load owner profiles: %w", err)
	}
	byID := make(map[uint]models.OwnerSummary, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = profiles[i].OwnerSummary()
	}
	for i := range equipment {
		if summary, ok := byID[equipment[i].OwnerID]; ok {
			equipment[i].Owner = &summary
		}
	}
	return nil
}
