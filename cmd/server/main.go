package main

import (
	"log"
	"time"

	"agromarket/internal/config"
	"agromarket/internal/database"
	"agromarket/internal/handlers"
	"agromarket/internal/migrations"
	"agromarket/internal/redis"
	"agromarket/internal/repository"
	"agromarket/internal/services"
	"agromarket/pkg/notify"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize webhook notifier
	notifyClient := notify.NewClient(cfg.NotifyURL, cfg.NotifyUsername, cfg.NotifyPassword)
	notifier := services.NewNotifier(notifyClient)

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Initialize services
	sessionTTL := time.Duration(cfg.SessionTimeout) * time.Second
	authService := services.NewAuthService(profileRepo, redisClient, cfg.JWTSecret, sessionTTL)
	profileService := services.NewProfileService(profileRepo, cartRepo)
	productService := services.NewProductService(productRepo, profileRepo)
	cartService := services.NewCartService(cartRepo, productRepo, profileRepo)
	orderService := services.NewOrderService(db, orderRepo, orderItemRepo, productRepo, profileRepo, notifier)
	equipmentService := services.NewEquipmentService(equipmentRepo, profileRepo)
	bookingService := services.NewBookingService(bookingRepo, equipmentRepo, profileRepo, notifier)

	// Initialize handlers
	hub := handlers.NewEventHub()
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, hub)
	equipmentHandler := handlers.NewEquipmentHandler(equipmentService, bookingService, hub)

	// Setup routes
	router := gin.Default()
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", authHandler.Me)
		api.POST("/auth/logout", authHandler.Logout)

		api.GET("/products", productHandler.List)
		api.GET("/products/:product_id", productHandler.Get)
		api.GET("/equipment", equipmentHandler.List)
		api.GET("/equipment/:equipment_id", equipmentHandler.Get)
		api.GET("/farmers", profileHandler.ListFarmers)
		api.GET("/profiles/:profile_id", profileHandler.Get)

		authed := api.Group("")
		authed.Use(handlers.AuthRequired(authService))
		{
			authed.PUT("/profile", profileHandler.Update)
			authed.POST("/farmers/:profile_id/rate", profileHandler.RateFarmer)

			authed.GET("/cart", cartHandler.List)
			authed.POST("/cart", cartHandler.Add)
			authed.PUT("/cart/:item_id", cartHandler.UpdateQuantity)
			authed.DELETE("/cart/:item_id", cartHandler.Remove)
			authed.DELETE("/cart", cartHandler.Clear)

			authed.POST("/checkout", orderHandler.Checkout)
			authed.GET("/orders", orderHandler.MyOrders)
			authed.GET("/orders/:order_id", orderHandler.GetOrder)

			authed.POST("/equipment/:equipment_id/bookings", equipmentHandler.Book)
			authed.GET("/bookings", equipmentHandler.MyBookings)
			authed.PUT("/bookings/:booking_id/status", equipmentHandler.SetBookingStatus)

			farmer := authed.Group("/farmer")
			farmer.Use(handlers.FarmerRequired())
			{
				farmer.GET("/products", productHandler.MyProducts)
				farmer.POST("/products", productHandler.Create)
				farmer.PUT("/products/:product_id", productHandler.Update)
				farmer.DELETE("/products/:product_id", productHandler.Delete)
				farmer.GET("/products/export", productHandler.Export)

				farmer.GET("/equipment", equipmentHandler.MyEquipment)
				farmer.POST("/equipment", equipmentHandler.Create)
				farmer.PUT("/equipment/:equipment_id", equipmentHandler.Update)
				farmer.DELETE("/equipment/:equipment_id", equipmentHandler.Delete)

				farmer.GET("/orders", orderHandler.FarmerOrders)
				farmer.GET("/bookings", equipmentHandler.BookingRequests)
				farmer.GET("/consumers", profileHandler.FarmerConsumers)
			}
		}

		api.GET("/events", hub.Handler)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
