package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/YaSanyaBeats/baseline-sub000/internal/api/handlers"
	"github.com/YaSanyaBeats/baseline-sub000/internal/api/middleware"
	"github.com/YaSanyaBeats/baseline-sub000/internal/config"
	"github.com/YaSanyaBeats/baseline-sub000/internal/services"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, taskClient handlers.IAsynqClient) *gin.Engine {
	// Initialize services needed by API handlers
	objectService := services.NewObjectService(db, cfg)
	bookingService := services.NewBookingService(db, cfg)
	transactionService := services.NewTransactionService(db, cfg)
	categoryService := services.NewCategoryService(db, cfg)
	analyticsService := services.NewAnalyticsService(cfg, rdb, objectService, bookingService)
	commissionService := services.NewCommissionService(cfg, bookingService, transactionService, categoryService)

	r := gin.Default()

	// Initialize Middleware
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)

	// Apply global middleware first (order matters)
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	analyticsHandler := handlers.NewRestAnalyticsHandler(analyticsService)
	commissionHandler := handlers.NewRestCommissionHandler(commissionService)
	adminHandler := handlers.NewRestAdminHandler(taskClient)

	v1 := r.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Authenticated Routes (rate limiting already applied globally)
		authRequired := v1.Group("/")
		authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			authRequired.POST("/analytics", analyticsHandler.BuildReport)
			authRequired.POST("/commission", commissionHandler.BuildReport)
		}

		// Admin Routes
		adminRequired := v1.Group("/admin")
		adminRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret), middleware.AdminMiddleware())
		{
			adminRequired.POST("/report/warm", adminHandler.WarmReport)
		}
	}

	return r
}

// SetupServiceRouter configures and returns the service Gin engine, a
// loopback-only control surface for orchestration.
func SetupServiceRouter(cfg *config.Config, shutdownChan chan<- struct{}) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.POST("/api", func(c *gin.Context) {
		var req struct {
			Method    string          `json:"method"`
			Arguments json.RawMessage `json:"arguments"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format"})
			return
		}

		switch req.Method {
		case "shutdown":
			log.Println("Received shutdown command via Service API")
			c.JSON(http.StatusOK, gin.H{"success": true, "result": "Shutdown initiated"})
			select {
			case shutdownChan <- struct{}{}:
			default:
				log.Println("Shutdown channel already signaled or blocked")
			}
		default:
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Unknown service method: " + req.Method})
		}
	})
	return r
}
