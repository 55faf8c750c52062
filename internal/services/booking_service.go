package services

import (
	"errors"
	"fmt"
	"time"

	"agromarket/internal/models"
	"agromarket/internal/repository"

	"gorm.io/gorm"
)

type BookingService interface {
	RequestBooking(borrowerID, equipmentID uint, startDate, endDate time.Time) (*models.EquipmentBooking, error)
	SetStatus(actorID, bookingID uint, target models.BookingStatus) (*models.EquipmentBooking, error)
	BorrowerBookings(borrowerID uint) ([]models.EquipmentBooking, error)
	OwnerBookingRequests(ownerID uint) ([]models.EquipmentBooking, error)
}

type bookingService struct {
	bookingRepo   repository.BookingRepository
	equipmentRepo repository.EquipmentRepository
	profileRepo   repository.ProfileRepository
	notifier      Notifier
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	equipmentRepo repository.EquipmentRepository,
	profileRepo repository.ProfileRepository,
	notifier Notifier,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		profileRepo:   profileRepo,
		notifier:      notifier,
	}
}

// RequestBooking inserts a new booking at pending.
//
// TODO: reject date ranges overlapping an existing approved booking for the
// same equipment once the policy for concurrent requests is settled.
func (s *bookingService) RequestBooking(borrowerID, equipmentID uint, startDate, endDate time.Time) (*models.EquipmentBooking, error) {
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}
	if _, err := s.equipmentRepo.GetByID(equipmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}

	booking := &models.EquipmentBooking{
		EquipmentID: equipmentID,
		BorrowerID:  borrowerID,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      models.BookingPending,
	}
	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.notifier != nil {
		s.notifier.BookingRequested(booking)
	}
	return booking, nil
}

// SetStatus applies one transition of the booking state machine:
//
//	pending  -> approved | rejected   (equipment owner only)
//	approved -> completed             (owner or borrower)
//
// rejected and completed are terminal.
func (s *bookingService) SetStatus(actorID, bookingID uint, target models.BookingStatus) (*models.EquipmentBooking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	equipment, err := s.equipmentRepo.GetByID(booking.EquipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}

	switch target {
	case models.BookingApproved, models.BookingRejected:
		if booking.Status != models.BookingPending {
			return nil, ErrInvalidTransition
		}
		if equipment.OwnerID != actorID {
			return nil, ErrForbidden
		}
	case models.BookingCompleted:
		if booking.Status != models.BookingApproved {
			return nil, ErrInvalidTransition
		}
		if equipment.OwnerID != actorID && booking.BorrowerID != actorID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrInvalidTransition
	}

	booking.Status = target
	booking.UpdatedAt = time.Now()
	if err := s.bookingRepo.Update(booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	if s.notifier != nil {
		s.notifier.BookingUpdated(booking)
	}
	return booking, nil
}

// BorrowerBookings returns the bookings the user placed, each joined with
// its equipment and that equipment's owner summary.
func (s *bookingService) BorrowerBookings(borrowerID uint) ([]models.EquipmentBooking, error) {
	bookings, err := s.bookingRepo.GetByBorrowerID(borrowerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	if err := s.attachEquipmentOwners(bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// OwnerBookingRequests returns bookings against any equipment the farmer
// owns, joined with a borrower summary.
func (s *bookingService) OwnerBookingRequests(ownerID uint) ([]models.EquipmentBooking, error) {
	equipmentIDs, err := s.equipmentRepo.IDsByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner equipment: %w", err)
	}
	if len(equipmentIDs) == 0 {
		return nil, nil
	}

	bookings, err := s.bookingRepo.GetByEquipmentIDs(equipmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking requests: %w", err)
	}

	var borrowerIDs []uint
	for i := range bookings {
		borrowerIDs = append(borrowerIDs, bookings[i].BorrowerID)
	}
	profiles, err := s.profileRepo.GetByIDs(dedupeIDs(borrowerIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load borrower profiles: %w", err)
	}
	byID := make(map[uint]models.OwnerSummary, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = profiles[i].OwnerSummary()
	}
	for i := range bookings {
		if summary, ok := byID[bookings[i].BorrowerID]; ok {
			bookings[i].Borrower = &summary
		}
	}
	if err := s.attachEquipmentOwners(bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *bookingService) attachEquipmentOwners(bookings []models.EquipmentBooking) error {
	var ownerIDs []uint
	for i := range bookings {
		if bookings[i].Equipment != nil {
			ownerIDs = append(ownerIDs, bookings[i].Equipment.OwnerID)
		}
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
	for i := range bookings {
		if bookings[i].Equipment == nil {
			continue
		}
		if summary, ok := byID[bookings[i].Equipment.OwnerID]; ok {
			bookings[i].Equipment.Owner = &summary
		}
	}
	return nil
}
