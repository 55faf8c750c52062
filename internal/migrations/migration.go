package migrations

import (
	"errors"
	"log"

	"agromarket/internal/database"
	"agromarket/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunMigrations migrates the schema and seeds demo accounts for local
// development.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	if err := seedDemoAccounts(db); err != nil {
		log.Printf("Warning: Failed to seed demo accounts: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func seedDemoAccounts(db *gorm.DB) error {
	var existing models.Profile
	err := db.Where("email = ?", "farmer@agromarket.local").First(&existing).Error
	if err == nil {
		log.Println("Demo accounts already exist")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	farmer := &models.Profile{
		Name:         "Demo Farmer",
		Email:        "farmer@agromarket.local",
		PasswordHash: string(hash),
		Role:         string(models.RoleFarmer),
		Farm:         "Green Valley Farm",
		Location:     "Springfield",
		Verified:     true,
	}
	if err := db.Create(farmer).Error; err != nil {
		return err
	}

	consumer := &models.Profile{
		Name:         "Demo Consumer",
		Email:        "consumer@agromarket.local",
		PasswordHash: string(hash),
		Role:         string(models.RoleConsumer),
		Location:     "Springfield",
	}
	if err := db.Create(consumer).Error; err != nil {
		return err
	}

	log.Println("Demo accounts created:")
	log.Println("  farmer@agromarket.local / demo1234")
	log.Println("  consumer@agromarket.local / demo1234")
	return nil
}
