package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/hydrabatch/hydrabatch/internal/api/handlers"
	"github.com/hydrabatch/hydrabatch/internal/api/middleware"
	"github.com/hydrabatch/hydrabatch/internal/config"

	_ "github.com/hydrabatch/hydrabatch/internal/api/docs" // swagger docs
)

// RegisterRoutes wires the batch intake endpoints, system endpoints, and
// the swagger UI onto r.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.Principal())

	// Optional API key protection.
	if cfg != nil && cfg.API.APIKey != "" {
		api.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	api.GET("/health", h.Health)
	api.GET("/ping", h.Ping)
	api.GET("/stats", h.Stats)

	api.GET("/config", h.GetConfig)

	api.POST("/zones/batchrecordchanges", h.ApplyBatchChange)
	api.GET("/zones/batchrecordchanges/:id", h.GetBatchChange)
	api.GET("/zones/batchrecordchanges", h.ListBatchChangeSummaries)
}
