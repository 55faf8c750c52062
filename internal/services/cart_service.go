package services

import (
	"errors"
	"fmt"
	"time"

	"agromarket/internal/models"
	"agromarket/internal/repository"

	"gorm.io/gorm"
)

type CartService interface {
	AddToCart(userID, productID uint, quantity int) (*models.CartItem, error)
	UpdateQuantity(userID, itemID uint, quantity int) (*models.CartItem, error)
	RemoveLine(userID, itemID uint) error
	ClearCart(userID uint) error
	ListCart(userID uint) ([]models.CartItem, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	profileRepo repository.ProfileRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	profileRepo repository.ProfileRepository,
) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo, profileRepo: profileRepo}
}

// AddToCart merges on add: a second add of the same product increments the
// existing line's quantity instead of creating a duplicate.
func (s *cartService) AddToCart(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	existing, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load cart line: %w", err)
		}
		item := &models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.Create(item); err != nil {
			return nil, fmt.Errorf("failed to add to cart: %w", err)
		}
		return item, nil
	}

	existing.Quantity += quantity
	existing.UpdatedAt = time.Now()
	if err := s.cartRepo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update cart line: %w", err)
	}
	return existing, nil
}

// UpdateQuantity sets the line's quantity; zero or negative deletes the
// line. A quantity of zero is never persisted.
func (s *cartService) UpdateQuantity(userID, itemID uint, quantity int) (*models.CartItem, error) {
	item, err := s.ownedLine(userID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.cartRepo.Delete(item.ID); err != nil {
			return nil, fmt.Errorf("failed to remove cart line: %w", err)
		}
		return nil, nil
	}

	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	if err := s.cartRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update cart line: %w", err)
	}
	return item, nil
}

func (s *cartService) RemoveLine(userID, itemID uint) error {
	item, err := s.ownedLine(userID, itemID)
	if err != nil {
		return err
	}
	if err := s.cartRepo.Delete(item.ID); err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ListCart returns the user's lines newest first with the product and its
// farmer summary attached. Lines whose product no longer resolves are kept
// with a nil product.
func (s *cartService) ListCart(userID uint) ([]models.CartItem, error) {
	items, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var farmerIDs []uint
	for _, item := range items {
		if item.Product != nil {
			farmerIDs = append(farmerIDs, item.Product.FarmerID)
		}
	}
	summaries, err := farmerSummaries(s.profileRepo, farmerIDs)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Product == nil {
			continue
		}
		if summary, ok := summaries[items[i].Product.FarmerID]; ok {
			items[i].Product.Farmer = &summary
		}
	}
	return items, nil
}

func (s *cartService) ownedLine(userID, itemID uint) (*models.CartItem, error) {
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load cart line: %w", err)
	}
	if item.UserID != userID {
		return nil, ErrNotFound
	}
	return item, nil
}

// farmerSummaries loads profiles for the given farmer ids and returns them
// keyed by id.
func farmerSummaries(profileRepo repository.ProfileRepository, ids []uint) (map[uint]models.FarmerSummary, error) {
	profiles, err := profileRepo.GetByIDs(dedupeIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load farmer profiles: %w", err)
	}
	summaries := make(map[uint]models.FarmerSummary, len(profiles))
	for i := range profiles {
		summaries[profiles[i].ID] = profiles[i].FarmerSummary()
	}
	return summaries, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	var out []uint
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
