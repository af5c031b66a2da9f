package http

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/prepsense/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(requestid.New())
	router.Use(RequestLogger(handler.logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(PerIPRateLimit(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		pantry := v1.Group("/pantry")
		{
			pantry.POST("/match", handler.MatchRecipe)
			pantry.POST("/deduct", handler.Deduct)
			pantry.POST("/cook", handler.CookRecipe)
			pantry.POST("/validate-unit", handler.ValidateUnit)
			pantry.POST("/items", handler.AddItem)
			pantry.GET("/items", handler.ListItems)
			pantry.GET("/records", handler.ListRecords)
		}
	}

	return router
}
