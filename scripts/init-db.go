package main

import (
	"fmt"
	"log"

	"agromarket/internal/config"
	"agromarket/internal/database"
	"agromarket/internal/migrations"
	"agromarket/internal/models"
)

// Standalone tool: wipe and recreate the schema, then seed demo data.
func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.Profile{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Equipment{},
		&models.EquipmentBooking{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Database initialized successfully!")
}
