package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/audioengine/api/health"
	"github.com/killallgit/audioengine/api/middleware"
	"github.com/killallgit/audioengine/api/types"
	"github.com/killallgit/audioengine/api/version"
	"github.com/killallgit/audioengine/api/waveform"
	_ "github.com/killallgit/audioengine/docs/swagger"
)

// ErrNoWaveformService is returned when routes are registered without an engine behind them
var ErrNoWaveformService = errors.New("waveform service is not configured")

// RegisterRoutes registers all API routes. waveformLimit guards waveform generation, which
// may decode a whole file; nil disables limiting.
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, waveformLimit gin.HandlerFunc) error {
	if deps == nil || deps.WaveformService == nil {
		return ErrNoWaveformService
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")
	waveform.RegisterRoutes(v1.Group("/audio", middleware.ConditionalGET()), deps, waveformLimit)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
