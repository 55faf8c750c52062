package services

import (
	"testing"

	"agromarket/internal/models"
	"agromarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewProfileRepository(db),
	)
}

func TestCreateAndGetProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	farmer := createProfile(t, db, models.RoleFarmer)

	product, err := svc.CreateProduct(farmer.ID, ProductInput{
		Name:          "Honey",
		Price:         12.5,
		Unit:          "jar",
		Category:      "pantry",
		StockQuantity: 40,
		EcoCertified:  true,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)

	loaded, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Honey", loaded.Name)
	assert.True(t, loaded.EcoCertified)
	require.NotNil(t, loaded.Farmer)
	assert.Equal(t, farmer.ID, loaded.Farmer.ID)

	_, err = svc.GetProductByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProductOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	farmer := createProfile(t, db, models.RoleFarmer)
	stranger := createProfile(t, db, models.RoleFarmer)
	product := createProduct(t, db, farmer.ID, 10, 100)

	input := ProductInput{Name: "Cherry Tomatoes", Price: 14, Unit: "kg", StockQuantity: 80}

	_, err := svc.UpdateProduct(stranger.ID, product.ID, input)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateProduct(farmer.ID, product.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Cherry Tomatoes", updated.Name)
	assert.Equal(t, 80, updated.StockQuantity)
}

func TestDeleteProductOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	farmer := createProfile(t, db, models.RoleFarmer)
	stranger := createProfile(t, db, models.RoleFarmer)
	product := createProduct(t, db, farmer.ID, 10, 100)

	assert.ErrorIs(t, svc.DeleteProduct(stranger.ID, product.ID), ErrForbidden)
	require.NoError(t, svc.DeleteProduct(farmer.ID, product.ID))

	_, err := svc.GetProductByID(product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProductsAttachesFarmers(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	farmer := createProfile(t, db, models.RoleFarmer)
	other := createProfile(t, db, models.RoleFarmer)
	createProduct(t, db, farmer.ID, 10, 100)
	createProduct(t, db, other.ID, 5, 50)

	products, err := svc.ListProducts()
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		require.NotNil(t, p.Farmer)
		assert.Equal(t, p.FarmerID, p.Farmer.ID)
	}

	mine, err := svc.ListByFarmer(farmer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
