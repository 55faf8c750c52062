package services

import (
	"errors"
	"fmt"
	"time"

	"agromarket/internal/models"
	"agromarket/internal/repository"

	"gorm.io/gorm"
)

type ProfileUpdateInput struct {
	Name        string `json:"name"`
	Farm        string `json:"farm"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
	Specialties string `json:"specialties"`
}

type ProfileService interface {
	GetProfile(id uint) (*models.Profile, error)
	ListFarmers() ([]models.Profile, error)
	UpdateProfile(actorID uint, input ProfileUpdateInput) (*models.Profile, error)
	RateFarmer(farmerID uint, score float64) (*models.Profile, error)
	FarmerConsumers(farmerID uint) ([]models.ConsumerSummary, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	cartRepo    repository.CartRepository
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	cartRepo repository.CartRepository,
) ProfileService {
	return &profileService{profileRepo: profileRepo, cartRepo: cartRepo}
}

func (s *profileService) GetProfile(id uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) ListFarmers() ([]models.Profile, error) {
	farmers, err := s.profileRepo.GetFarmers()
	if err != nil {
		return nil, fmt.Errorf("failed to load farmers: %w", err)
	}
	return farmers, nil
}

func (s *profileService) UpdateProfile(actorID uint, input ProfileUpdateInput) (*models.Profile, error) {
	profile, err := s.GetProfile(actorID)
	if err != nil {
		return nil, err
	}

	profile.Name = input.Name
	profile.Farm = input.Farm
	profile.Location = input.Location
	profile.Description = input.Description
	profile.Photo = input.Photo
	profile.Specialties = input.Specialties
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// RateFarmer folds one score into the running average:
// rating = (rating*reviews + score) / (reviews + 1). Raters are not
// deduplicated; the same user may rate a farmer repeatedly.
func (s *profileService) RateFarmer(farmerID uint, score float64) (*models.Profile, error) {
	if score < 1 || score > 5 {
		return nil, ErrInvalidRating
	}

	profile, err := s.GetProfile(farmerID)
	if err != nil {
		return nil, err
	}

	total := profile.Rating * float64(profile.Reviews)
	profile.Reviews++
	profile.Rating = (total + score) / float64(profile.Reviews)
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}
	return profile, nil
}

// FarmerConsumers lists the distinct consumers whose carts currently hold
// at least one of the farmer's products.
func (s *profileService) FarmerConsumers(farmerID uint) ([]models.ConsumerSummary, error) {
	userIDs, err := s.cartRepo.DistinctUserIDsByFarmer(farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load consumers: %w", err)
	}
	profiles, err := s.profileRepo.GetByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load consumer profiles: %w", err)
	}
	summaries := make([]models.ConsumerSummary, 0, len(profiles))
	for i := range profiles {
		summaries = append(summaries, profiles[i].ConsumerSummary())
	}
	return summaries, nil
}
