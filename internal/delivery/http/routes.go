package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/metalscrape/backend/config"
	"github.com/metalscrape/backend/internal/platform/logger"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log *logger.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestLogger(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Path used by the bundled web client
	router.GET("/products", handler.SearchProducts)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", handler.SearchProducts)
			products.GET("/facets", handler.Facets)
		}
	}

	router.NoRoute(noRoute(cfg.Server.StaticDir))

	return router
}

// noRoute serves the static client when a directory is configured
func noRoute(staticDir string) gin.HandlerFunc {
	var files http.Handler
	if staticDir != "" {
		files = http.FileServer(http.Dir(staticDir))
	}
	return func(c *gin.Context) {
		method := c.Request.Method
		if files == nil || (method != http.MethodGet && method != http.MethodHead) {
			RespondError(c, http.StatusNotFound, "not_found", errors.New("route not found"))
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}
