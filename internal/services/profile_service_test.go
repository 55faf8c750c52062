package services

import (
	"testing"

	"agromarket/internal/models"
	"agromarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProfileService(db *gorm.DB) ProfileService {
	return NewProfileService(
		repository.NewProfileRepository(db),
		repository.NewCartRepository(db),
	)
}

func TestRateFarmerRunningAverage(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(db)
	farmer := createProfile(t, db, models.RoleFarmer)

	require.NoError(t, db.Model(&models.Profile{}).Where("id = ?", farmer.ID).
		Updates(map[string]interface{}{"rating": 4.0, "reviews": 10}).Error)

	updated, err := svc.RateFarmer(farmer.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 11, updated.Reviews)
	assert.InDelta(t, (4.0*10+5)/11, updated.Rating, 1e-9)
}

func TestRateFarmerFirstRating(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(db)
	farmer := createProfile(t, db, models.RoleFarmer)

	updated, err := svc.RateFarmer(farmer.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Reviews)
	assert.InDelta(t, 4.0, updated.Rating, 1e-9)
}

func TestRateFarmerRejectsOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(db)
	farmer := createProfile(t, db, models.RoleFarmer)

	_, err := svc.RateFarmer(farmer.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.RateFarmer(farmer.ID, 6)
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestListFarmersSortedByName(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(db)

	b := createProfile(t, db, models.RoleFarmer)
	require.NoError(t, db.Model(b).Update("name", "Beatrice").Error)
	a := createProfile(t, db, models.RoleFarmer)
	require.NoError(t, db.Model(a).Update("name", "Abel").Error)
	createProfile(t, db, models.RoleConsumer)

	farmers, err := svc.ListFarmers()
	require.NoError(t, err)
	require.Len(t, farmers, 2)
	assert.Equal(t, "Abel", farmers[0].Name)
	assert.Equal(t, "Beatrice", farmers[1].Name)
}

func TestFarmerConsumers(t *testing.T) {
	db := setupTestDB(t)
	profileSvc := newProfileService(db)
	cartSvc := newCartService(db)

	farmer := createProfile(t, db, models.RoleFarmer)
	other := createProfile(t, db, models.RoleFarmer)
	consumer := createProfile(t, db, models.RoleConsumer)
	mine := createProduct(t, db, farmer.ID, 10, 100)
	theirs := createProduct(t, db, other.ID, 10, 100)

	_, err := cartSvc.AddToCart(consumer.ID, mine.ID, 1)
	require.NoError(t, err)
	_, err = cartSvc.AddToCart(consumer.ID, theirs.ID, 1)
	require.NoError(t, err)

	consumers, err := profileSvc.FarmerConsumers(farmer.ID)
	require.NoError(t, err)
	require.Len(t, consumers, 1)
	assert.Equal(t, consumer.Email, consumers[0].Email)

	none, err := profileSvc.FarmerConsumers(9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(db)
	farmer := createProfile(t, db, models.RoleFarmer)

	updated, err := svc.UpdateProfile(farmer.ID, ProfileUpdateInput{
		Name:     "New Name",
		Farm:     "New Farm",
		Location: "Elsewhere",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "New Farm", updated.Farm)

	_, err = svc.UpdateProfile(9999, ProfileUpdateInput{Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}
