package services

import (
	"errors"
	"fmt"
	"time"

	"agromarket/internal/models"
	"agromarket/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService interface {
	Checkout(userID uint) (*models.Order, error)
	GetUserOrders(userID uint) ([]models.Order, error)
	GetFarmerOrders(farmerID uint) ([]models.Order, error)
	GetOrderByID(userID, orderID uint) (*models.Order, error)
}

type orderService struct {
	db            *gorm.DB
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	productRepo   repository.ProductRepository
	profileRepo   repository.ProfileRepository
	notifier      Notifier
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	productRepo repository.ProductRepository,
	profileRepo repository.ProfileRepository,
	notifier Notifier,
) OrderService {
	return &orderService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
		profileRepo:   profileRepo,
		notifier:      notifier,
	}
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// Checkout converts the user's cart into an order inside a single database
// transaction: order row, one item per resolvable cart line with the unit
// price frozen at this moment, clamped stock decrement, cart cleared. A
// failure at any step rolls the whole checkout back.
func (s *orderService) Checkout(userID uint) (*models.Order, error) {
	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", userID).Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var total float64
		var items []models.OrderItem
		for _, line := range lines {
			// Lines whose product was deleted since they were added are
			// dropped from the order and the total.
			if line.Product == nil {
				continue
			}
			total += line.Product.Price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Product.Price,
			})
		}

		order = &models.Order{
			OrderRef:    generateOrderRef(),
			UserID:      userID,
			TotalAmount: total,
			Status:      models.OrderCompleted,
			Items:       items,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		// Single-statement clamped decrement: stock never goes negative and
		// concurrent checkouts cannot both spend the same units.
		for _, item := range items {
			err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock_quantity", gorm.Expr(
					"CASE WHEN stock_quantity > ? THEN stock_quantity - ? ELSE 0 END",
					item.Quantity, item.Quantity,
				)).Error
			if err != nil {
				return err
			}
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	if s.notifier != nil {
		s.notifier.OrderPlaced(order)
	}
	return order, nil
}

// GetUserOrders is the consumer history: the user's orders newest first,
// each with nested items, products, and farmer summaries.
func (s *orderService) GetUserOrders(userID uint) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	if err := s.attachFarmerSummaries(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetFarmerOrders assembles the farmer-side view: every order containing at
// least one of the farmer's products, carrying only that farmer's items,
// with the purchasing consumer attached.
func (s *orderService) GetFarmerOrders(farmerID uint) ([]models.Order, error) {
	productIDs, err := s.productRepo.IDsByFarmer(farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load farmer products: %w", err)
	}
	if len(productIDs) == 0 {
		return nil, nil
	}

	items, err := s.orderItemRepo.GetByProductIDs(productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	grouped := make(map[uint][]models.OrderItem)
	var orderIDs []uint
	for _, item := range items {
		if _, ok := grouped[item.OrderID]; !ok {
			orderIDs = append(orderIDs, item.OrderID)
		}
		grouped[item.OrderID] = append(grouped[item.OrderID], item)
	}

	orders, err := s.orderRepo.GetByIDs(orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	var consumerIDs []uint
	for i := range orders {
		orders[i].Items = grouped[orders[i].ID]
		consumerIDs = append(consumerIDs, orders[i].UserID)
	}

	consumers, err := s.profileRepo.GetByIDs(dedupeIDs(consumerIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load consumer profiles: %w", err)
	}
	byID := make(map[uint]models.ConsumerSummary, len(consumers))
	for i := range consumers {
		byID[consumers[i].ID] = consumers[i].ConsumerSummary()
	}
	for i := range orders {
		if summary, ok := byID[orders[i].UserID]; ok {
			orders[i].Consumer = &summary
		}
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	orders := []models.Order{*order}
	if err := s.attachFarmerSummaries(orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (s *orderService) attachFarmerSummaries(orders []models.Order) error {
	var farmerIDs []uint
	for i := range orders {
		for j := range orders[i].Items {
			if orders[i].Items[j].Product != nil {
				farmerIDs = append(farmerIDs, orders[i].Items[j].Product.FarmerID)
			}
		}
	}
	summaries, err := farmerSummaries(s.profileRepo, farmerIDs)
	if err != nil {
		return err
	}
	for i := range orders {
		for j := range orders[i].Items {
			product := orders[i].Items[j].Product
			if product == nil {
				continue
			}
			if summary, ok := summaries[product.FarmerID]; ok {
				product.Farmer = &summary
			}
		}
	}
	return nil
}
