// Package handlers implements the REST API endpoint handlers for HydraBatch.
//
// REST API Endpoints:
//
// System:
//   - GET /api/v1/health - Health check status
//   - GET /api/v1/stats - Process statistics (uptime, memory, goroutines)
//   - GET /api/v1/config - Current configuration (sensitive values redacted)
//
// Batch Changes:
//   - POST /api/v1/zones/batchrecordchanges - Submit a batch of DNS record changes
//   - GET /api/v1/zones/batchrecordchanges/:id - Get a batch change by id
//   - GET /api/v1/zones/batchrecordchanges - List the caller's batch change summaries
//   - GET /api/v1/ping - Liveness probe, returns the literal string "PONG"
//
// Authentication:
//
// The caller's identity is established by an upstream auth proxy and
// forwarded via X-User-Id / X-User-Name / X-Admin / X-Group-Ids headers;
// middleware.Principal builds the authz.Principal these handlers operate
// under. In addition, the management API itself may be protected by a
// shared-secret X-API-Key header (middleware.RequireAPIKey).
//
// @title HydraBatch Intake API
// @version 1.0
// @description REST API for submitting and tracking DNS batch changes.
//
// @contact.name HydraBatch Support
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"log/slog"
	"time"

	"github.com/hydrabatch/hydrabatch/internal/batchservice"
	"github.com/hydrabatch/hydrabatch/internal/config"
)

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	service   *batchservice.Service
	logger    *slog.Logger
	startTime time.Time
}

// New creates a new Handler wired to the batch service orchestrator.
func New(cfg *config.Config, service *batchservice.Service, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		service:   service,
		logger:    logger,
		startTime: time.Now(),
	}
}
