package services

import (
	"testing"
	"time"

	"agromarket/internal/models"
	"agromarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) OrderService {
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewOrderItemRepository(db),
		repository.NewProductRepository(db),
		repository.NewProfileRepository(db),
		nil,
	)
}

func TestCheckout(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)

	farmer := createProfile(t, db, models.RoleFarmer)
	consumer := createProfile(t, db, models.RoleConsumer)
	p1 := createProduct(t, db, farmer.ID, 10, 20)
	p2 := createProduct(t, db, farmer.ID, 5, 20)

	_, err := cartSvc.AddToCart(consumer.ID, p1.ID, 2)
	require.NoError(t, err)
	_, err = cartSvc.AddToCart(consumer.ID, p2.ID, 1)
	require.NoError(t, err)

	order, err := orderSvc.Checkout(consumer.ID)
	require.NoError(t, err)

	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Equal(t, models.OrderCompleted, order.Status)
	assert.NotEmpty(t, order.OrderRef)
	require.Len(t, order.Items, 2)

	// Stock reduced by the purchased quantities.
	var got models.Product
	require.NoError(t, db.First(&got, p1.ID).Error)
	assert.Equal(t, 18, got.StockQuantity)
	require.NoError(t, db.First(&got, p2.ID).Error)
	assert.Equal(t, 19, got.StockQuantity)

	// Cart is empty afterwards.
	items, err := cartSvc.ListCart(consumer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(db)
	consumer := createProfile(t, db, models.RoleConsumer)

	_, err := orderSvc.Checkout(consumer.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutFreezesPrice(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)

	farmer := createProfile(t, db, models.RoleFarmer)
	consumer := createProfile(t, db, models.RoleConsumer)
	product := createProduct(t, db, farmer.ID, 10, 20)

	_, err := cartSvc.AddToCart(consumer.ID, product.ID, 1)
	require.NoError(t, err)

	order, err := orderSvc.Checkout(consumer.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 10.0, order.Items[0].Price)

	// A later price change must not affect the recorded item or total.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", 99.0).Error)

	reloaded, err := orderSvc.GetOrderByID(consumer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, reloaded.Items[0].Price)
	assert.Equal(t, 10.0, reloaded.TotalAmount)
}

func TestCheckoutStockFloorsAtZero(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)

	farmer := createProfile(t, db, models.RoleFarmer)
	consumer := createProfile(t, db, models.RoleConsumer)
	product := createProduct(t, db, farmer.ID, 10, 3)

	_, err := cartSvc.AddToCart(consumer.ID, product.ID, 5)
	require.NoError(t, err)

	_, err = orderSvc.Checkout(consumer.ID)
	require.NoError(t, err)

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 0, got.StockQuantity)
}

func TestCheckoutSkipsUnresolvableProducts(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)

	farmer := createProfile(t, db, models.RoleFarmer)
	consumer := createProfile(t, db, models.RoleConsumer)
	kept := createProduct(t, db, farmer.ID, 10, 20)
	gone := createProduct(t, db, farmer.ID, 7, 20)

	_, err := cartSvc.AddToCart(consumer.ID, kept.ID, 1)
	require.NoError(t, err)
	_, err = cartSvc.AddToCart(consumer.ID, gone.ID, 1)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.Product{}, gone.ID).Error)

	order, err := orderSvc.Checkout(consumer.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, kept.ID, order.Items[0].ProductID)
}

func TestUserOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)

	farmer := createProfile(t, db, models.RoleFarmer)
	consumer := createProfile(t, db, models.RoleConsumer)
	product := createProduct(t, db, farmer.ID, 10, 100)

	_, err := cartSvc.AddToCart(consumer.ID, product.ID, 1)
	require.NoError(t, err)
	first, err := orderSvc.Checkout(consumer.ID)
	require.NoError(t, err)

	// Push the first order's timestamp into the past so ordering is
	// unambiguous.
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	_, err = cartSvc.AddToCart(consumer.ID, product.ID, 2)
	require.NoError(t, err)
	second, err := orderSvc.Checkout(consumer.ID)
	require.NoError(t, err)

	orders, err := orderSvc.GetUserOrders(consumer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	require.Len(t, orders[0].Items, 1)
	require.NotNil(t, orders[0].Items[0].Product)
	require.NotNil(t, orders[0].Items[0].Product.Farmer)
	assert.Equal(t, farmer.Name, orders[0].Items[0].Product.Farmer.Name)
}

func TestFarmerOrdersOnlyOwnItems(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)

	farmerA := createProfile(t, db, models.RoleFarmer)
	farmerB := createProfile(t, db, models.RoleFarmer)
	consumer := createProfile(t, db, models.RoleConsumer)
	productA := createProduct(t, db, farmerA.ID, 10, 100)
	productB := createProduct(t, db, farmerB.ID, 20, 100)

	_, err := cartSvc.AddToCart(consumer.ID, productA.ID, 1)
	require.NoError(t, err)
	_, err = cartSvc.AddToCart(consumer.ID, productB.ID, 1)
	require.NoError(t, err)

	order, err := orderSvc.Checkout(consumer.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	ordersA, err := orderSvc.GetFarmerOrders(farmerA.ID)
	require.NoError(t, err)
	require.Len(t, ordersA, 1)
	assert.Equal(t, order.ID, ordersA[0].ID)
	require.Len(t, ordersA[0].Items, 1)
	assert.Equal(t, productA.ID, ordersA[0].Items[0].ProductID)

	// The consumer summary is attached to the farmer's view.
	require.NotNil(t, ordersA[0].Consumer)
	assert.Equal(t, consumer.Email, ordersA[0].Consumer.Email)

	// A farmer with no sold products sees nothing.
	farmerC := createProfile(t, db, models.RoleFarmer)
	ordersC, err := orderSvc.GetFarmerOrders(farmerC.ID)
	require.NoError(t, err)
	assert.Empty(t, ordersC)
}

func TestGetOrderByIDOwnership(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)

	farmer := createProfile(t, db, models.RoleFarmer)
	consumer := createProfile(t, db, models.RoleConsumer)
	stranger := createProfile(t, db, models.RoleConsumer)
	product := createProduct(t, db, farmer.ID, 10, 100)

	_, err := cartSvc.AddToCart(consumer.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := orderSvc.Checkout(consumer.ID)
	require.NoError(t, err)

	_, err = orderSvc.GetOrderByID(stranger.ID, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
