package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"agromarket/internal/database"
	"agromarket/internal/models"
	"agromarket/internal/redis"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would see a different empty in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

var emailSeq int

func createProfile(t *testing.T, db *gorm.DB, role models.ProfileRole) *models.Profile {
	t.Helper()
	emailSeq++
	profile := &models.Profile{
		Name:         fmt.Sprintf("User %d", emailSeq),
		Email:        fmt.Sprintf("user%d@example.com", emailSeq),
		PasswordHash: "x",
		Role:         string(role),
		Farm:         "Test Farm",
		Location:     "Testville",
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func createProduct(t *testing.T, db *gorm.DB, farmerID uint, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		FarmerID:      farmerID,
		Name:          "Tomatoes",
		Price:         price,
		Unit:          "kg",
		Category:      "vegetables",
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createEquipment(t *testing.T, db *gorm.DB, ownerID uint) *models.Equipment {
	t.Helper()
	equipment := &models.Equipment{
		OwnerID:      ownerID,
		Name:         "Tractor",
		Condition:    "good",
		DailyRate:    50,
		Location:     "Testville",
		Availability: true,
	}
	require.NoError(t, db.Create(equipment).Error)
	return equipment
}

// fakeSessionStore is an in-memory SessionStore for auth tests.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*redis.SessionData
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*redis.SessionData)}
}

func (s *fakeSessionStore) SetSession(sessionID string, data *redis.SessionData, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = data
	return nil
}

func (s *fakeSessionStore) GetSession(sessionID string) (*redis.SessionData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return data, nil
}

func (s *fakeSessionStore) DeleteSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
