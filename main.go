package main

import (
	"fmt"
	"log"

	"splitup-be/internal/catalog"
	"splitup-be/internal/config"
	"splitup-be/internal/database"
	"splitup-be/internal/handlers"
	"splitup-be/internal/middleware"
	"splitup-be/internal/routes"
	"splitup-be/internal/service"
	"splitup-be/internal/services"
	"splitup-be/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load YAML configuration
	if err := config.LoadConfig(); err != nil {
		log.Printf("Warning: Failed to load YAML config: %v", err)
		log.Println("Using default configuration...")
	}
	appConfig := config.GetConfig()

	// Initialize database
	db, err := database.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Load the plan catalog
	cat, err := catalog.Load(appConfig.Catalog.Path)
	if err != nil {
		log.Fatal("Failed to load plan catalog:", err)
	}
	log.Printf("Loaded %d plans", len(cat.Plans()))

	// Outbound email
	notifier := service.NewNotifierFromConfig(appConfig)

	// Domain services
	orderStore := store.NewPostgresOrderStore(db)
	orderService := services.NewOrderService(orderStore, cat, appConfig.Pricing, notifier)
	groupService := services.NewGroupService(orderStore, notifier)

	// Initialize Gin router
	r := gin.New()
	r.Use(middleware.CustomLoggingMiddleware())
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS())
	r.Use(middleware.UserExtractionMiddleware())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, notifier)
	planHandler := handlers.NewPlanHandler(cat)
	orderHandler := handlers.NewOrderHandler(orderService)
	adminHandler := handlers.NewAdminHandler(db, orderService, groupService)

	// Setup routes
	routes.SetupRoutes(r, authHandler, planHandler, orderHandler, adminHandler, db)

	// Start server
	port := fmt.Sprintf("%d", appConfig.Server.Port)
	host := appConfig.Server.Host

	log.Printf("Server starting on %s:%s", host, port)
	if err := r.Run(host + ":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
