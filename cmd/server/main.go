package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printshop-task-api/internal/config"
	"github.com/yukikurage/printshop-task-api/internal/database"
	"github.com/yukikurage/printshop-task-api/internal/derivation"
	apierrors "github.com/yukikurage/printshop-task-api/internal/errors"
	"github.com/yukikurage/printshop-task-api/internal/handlers"
	"github.com/yukikurage/printshop-task-api/internal/repository"
	"github.com/yukikurage/printshop-task-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories and services
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)

	engine := derivation.New()
	productService := services.NewProductService(productRepo, engine)
	orderService := services.NewOrderService(orderRepo, productService, engine)
	taskTreeService := services.NewTaskTreeService(orderRepo, cfg.MutationMaxAttempts)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			apierrors.ServiceUnavailable(c, "Database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Print shop task API is running",
		})
	})

	handlers.RegisterRoutes(r,
		handlers.NewProductHandler(productService),
		handlers.NewOrderHandler(orderService),
		handlers.NewTaskHandler(taskTreeService),
		orderService,
	)

	// Start server
	log.Printf("Server starting on %s (db driver: %s)", cfg.HTTPAddr, cfg.DBDriver)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
