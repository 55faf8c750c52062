package services

import (
	"testing"

	"agromarket/internal/models"
	"agromarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEquipmentService(db *gorm.DB) EquipmentService {
	return NewEquipmentService(
		repository.NewEquipmentRepository(db),
		repository.NewProfileRepository(db),
	)
}

func TestCreateEquipment(t *testing.T) {
	db := setupTestDB(t)
	svc := newEquipmentService(db)
	owner := createProfile(t, db, models.RoleFarmer)

	equipment, err := svc.CreateEquipment(owner.ID, EquipmentInput{
		Name:         "Seed Drill",
		Condition:    "good",
		DailyRate:    75,
		Location:     "Northfield",
		Availability: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, equipment.ID)
	assert.Equal(t, owner.ID, equipment.OwnerID)

	loaded, err := svc.GetEquipmentByID(equipment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seed Drill", loaded.Name)
	require.NotNil(t, loaded.Owner)
	assert.Equal(t, owner.ID, loaded.Owner.ID)
}

func TestUpdateEquipmentOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newEquipmentService(db)
	owner := createProfile(t, db, models.RoleFarmer)
	stranger := createProfile(t, db, models.RoleFarmer)
	equipment := createEquipment(t, db, owner.ID)

	input := EquipmentInput{Name: "Tractor Mk2", Condition: "fair", DailyRate: 60, Availability: false}

	_, err := svc.UpdateEquipment(stranger.ID, equipment.ID, input)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateEquipment(owner.ID, equipment.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Tractor Mk2", updated.Name)
	assert.False(t, updated.Availability)

	_, err = svc.UpdateEquipment(owner.ID, 9999, input)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteEquipmentOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newEquipmentService(db)
	owner := createProfile(t, db, models.RoleFarmer)
	stranger := createProfile(t, db, models.RoleFarmer)
	equipment := createEquipment(t, db, owner.ID)

	assert.ErrorIs(t, svc.DeleteEquipment(stranger.ID, equipment.ID), ErrForbidden)

	require.NoError(t, svc.DeleteEquipment(owner.ID, equipment.ID))
	_, err := svc.GetEquipmentByID(equipment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAvailableFiltersUnavailable(t *testing.T) {
	db := setupTestDB(t)
	svc := newEquipmentService(db)
	owner := createProfile(t, db, models.RoleFarmer)

	available := createEquipment(t, db, owner.ID)
	parked := createEquipment(t, db, owner.ID)
	require.NoError(t, db.Model(parked).Update("availability", false).Error)

	listed, err := svc.ListAvailable()
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, available.ID, listed[0].ID)
	require.NotNil(t, listed[0].Owner)
	assert.Equal(t, owner.ID, listed[0].Owner.ID)
}

func TestListByLocationMatchesCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	svc := newEquipmentService(db)
	owner := createProfile(t, db, models.RoleFarmer)

	north := createEquipment(t, db, owner.ID)
	require.NoError(t, db.Model(north).Update("location", "Northfield Valley").Error)
	south := createEquipment(t, db, owner.ID)
	require.NoError(t, db.Model(south).Update("location", "Southridge").Error)

	listed, err := svc.ListByLocation("northfield")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, north.ID, listed[0].ID)
}

func TestListByOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newEquipmentService(db)
	owner := createProfile(t, db, models.RoleFarmer)
	other := createProfile(t, db, models.RoleFarmer)
	createEquipment(t, db, owner.ID)
	createEquipment(t, db, owner.ID)
	createEquipment(t, db, other.ID)

	listed, err := svc.ListByOwner(owner.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
