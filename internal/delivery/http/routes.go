package http

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/plantheque/backend/config"
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
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API routes, never cached: search results and library state change
	// between calls
	api := router.Group("/api")
	api.Use(NoCacheMiddleware())
	{
		api.GET("/search", handler.Search)

		plants := api.Group("/plants")
		{
			plants.GET("/detail", handler.PlantDetail)
			plants.GET("/care", handler.PlantCare)
		}

		library := api.Group("/library")
		{
			library.GET("", handler.ListLibrary)
			library.POST("/add", handler.AddToLibrary)
			library.POST("/:id/photo", handler.UploadPhoto)
		}

		api.GET("/stats", handler.Stats)
		api.GET("/suggestions", handler.Suggestions)
	}

	// Frontend and uploaded photos. The index is bound to "/" alone so
	// the API groups above keep their paths.
	if cfg.Server.FrontendDir != "" {
		router.StaticFile("/", filepath.Join(cfg.Server.FrontendDir, "index.html"))
		router.Static("/static", cfg.Server.FrontendDir)
	}
	if cfg.Server.UploadDir != "" {
		router.Static("/uploads", cfg.Server.UploadDir)
	}

	return router
}
