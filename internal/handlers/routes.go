package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "analyze-relay-api/internal/docs"
	"analyze-relay-api/internal/middleware"
	"analyze-relay-api/internal/services"
)

// Service metadata reported by the health endpoint
const (
	ServiceName    = "analyze-relay-api"
	ServiceVersion = "1.0.0"
)

// Route paths served by the relay
const (
	AnalyzePath        = "/api/analyze"
	NetlifyAnalyzePath = "/.netlify/functions/analyze"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	RelayService services.RelayService
	// SlowRequestThreshold defaults to 10s when zero
	SlowRequestThreshold time.Duration
	EnableSwagger        bool
}

// NewRouter builds a gin engine with middleware and routes
func NewRouter(config *RouterConfig) *gin.Engine {
	router := gin.New()
	SetupMiddleware(router, config)
	SetupRoutes(router, config)
	return router
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	analyzeHandler := NewAnalyzeHandler(config.RelayService)

	// Method checks happen in the handler so every verb reaches it
	router.Any(AnalyzePath, analyzeHandler.Analyze)
	router.Any(NetlifyAnalyzePath, analyzeHandler.Analyze)

	// Any only registers the standard verbs; other methods on the analyze
	// paths land here and still get the 405 envelope
	router.NoRoute(func(c *gin.Context) {
		switch c.Request.URL.Path {
		case AnalyzePath, NetlifyAnalyzePath:
			analyzeHandler.Analyze(c)
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		}
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   ServiceName,
			"version":   ServiceVersion,
			"timestamp": time.Now().UTC(),
		})
	})

	if config.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, config *RouterConfig) {
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger())
	router.Use(middleware.PerformanceMonitor(config.SlowRequestThreshold))
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())
}
