package services

import (
	"errors"
	"fmt"
	"time"

	"agromarket/internal/models"
	"agromarket/internal/repository"

	"gorm.io/gorm"
)

type ProductInput struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,min=0"`
	Unit          string  `json:"unit"`
	Category      string  `json:"category"`
	StockQuantity int     `json:"stock_quantity" binding:"min=0"`
	ImageURL      string  `json:"image_url"`
	EcoCertified  bool    `json:"eco_certified"`
}

type ProductService interface {
	CreateProduct(farmerID uint, input ProductInput) (*models.Product, error)
	UpdateProduct(actorID, productID uint, input ProductInput) (*models.Product, error)
	DeleteProduct(actorID, productID uint) error
	GetProductByID(id uint) (*models.Product, error)
	ListProducts() ([]models.Product, error)
	ListByFarmer(farmerID uint) ([]models.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	profileRepo repository.ProfileRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	profileRepo repository.ProfileRepository,
) ProductService {
	return &productService{productRepo: productRepo, profileRepo: profileRepo}
}

func (s *productService) CreateProduct(farmerID uint, input ProductInput) (*models.Product, error) {
	product := &models.Product{
		FarmerID:      farmerID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Unit:          input.Unit,
		Category:      input.Category,
		StockQuantity: input.StockQuantity,
		ImageURL:      input.ImageURL,
		EcoCertified:  input.EcoCertified,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *productService) UpdateProduct(actorID, productID uint, input ProductInput) (*models.Product, error) {
	product, err := s.ownedProduct(actorID, productID)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Unit = input.Unit
	product.Category = input.Category
	product.StockQuantity = input.StockQuantity
	product.ImageURL = input.ImageURL
	product.EcoCertified = input.EcoCertified
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *productService) DeleteProduct(actorID, productID uint) error {
	if _, err := s.ownedProduct(actorID, productID); err != nil {
		return err
	}
	if err := s.productRepo.Delete(productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *productService) GetProductByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	summaries, err := farmerSummaries(s.profileRepo, []uint{product.FarmerID})
	if err != nil {
		return nil, err
	}
	if summary, ok := summaries[product.FarmerID]; ok {
		product.Farmer = &summary
	}
	return product, nil
}

// ListProducts is the marketplace view: all products newest first with
// their farmer summaries.
func (s *productService) ListProducts() ([]models.Product, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	var farmerIDs []uint
	for i := range products {
		farmerIDs = append(farmerIDs, products[i].FarmerID)
	}
	summaries, err := farmerSummaries(s.profileRepo, farmerIDs)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if summary, ok := summaries[products[i].FarmerID]; ok {
			products[i].Farmer = &summary
		}
	}
	return products, nil
}

func (s *productService) ListByFarmer(farmerID uint) ([]models.Product, error) {
	products, err := s.productRepo.GetByFarmerID(farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load farmer products: %w", err)
	}
	return products, nil
}

func (s *productService) ownedProduct(actorID, productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product.FarmerID != actorID {
		return nil, ErrForbidden
	}
	return product, nil
}
