package routes

import (
	"database/sql"

	"splitup-be/internal/handlers"
	"splitup-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authHandler *handlers.AuthHandler, planHandler *handlers.PlanHandler, orderHandler *handlers.OrderHandler, adminHandler *handlers.AdminHandler, db *sql.DB) {
	// API v1
	v1 := r.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", middleware.AuthRequired(), authHandler.GetProfile)
	}

	// Plan routes (no auth required for browsing)
	plans := v1.Group("/plans")
	{
		plans.GET("", planHandler.GetPlans)
		plans.GET("/:id", planHandler.GetPlanByID)
	}

	// Order routes
	orders := v1.Group("/orders")
	orders.Use(middleware.AuthRequired())
	{
		orders.POST("", middleware.OrderRateLimit(db), orderHandler.CreateOrder)
		orders.GET("", orderHandler.GetUserOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/settle", orderHandler.SettleOrder)
	}

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/orders", adminHandler.GetOrders)
		admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
		admin.GET("/groups", adminHandler.GetGroups)
		admin.GET("/groups/split", adminHandler.SplitGroups)
		admin.POST("/credentials", adminHandler.DistributeCredentials)
		admin.POST("/admins", middleware.SuperAdminRequired(), adminHandler.AddAdmin)
	}
}
