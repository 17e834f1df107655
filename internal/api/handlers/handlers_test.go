// Package handlers_test provides behavior tests for the API handlers package.
package handlers_test

import (
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hydrabatch/hydrabatch/internal/api/handlers"
	"github.com/hydrabatch/hydrabatch/internal/api/middleware"
	"github.com/hydrabatch/hydrabatch/internal/batchservice"
	"github.com/hydrabatch/hydrabatch/internal/config"
	"github.com/hydrabatch/hydrabatch/internal/converter"
	"github.com/hydrabatch/hydrabatch/internal/model"
	"github.com/hydrabatch/hydrabatch/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Batch: config.BatchConfig{
			ChangeLimit:        1000,
			MinTTL:             30,
			MaxTTL:             86400,
			MaxSummaryPageSize: 100,
		},
	}
}

func newTestHandler(t *testing.T) *handlers.Handler {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "hydrabatch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.ZoneStore().UpsertZone(t.Context(), model.Zone{
		ID:   "z1",
		Name: "example.com.",
		AccessControl: model.AccessControl{Rules: []model.ACLRule{
			{UserID: "alice", RecordMask: "*", Level: model.AccessWrite},
		}},
	}))

	conv := converter.NewAsyncConverter(db.BatchChangeStore(), 2)
	svc := batchservice.New(testConfig(), db.ZoneStore(), db.RecordSetStore(), db.BatchChangeStore(), conv)
	return handlers.New(testConfig(), svc, nil)
}

func setupTestRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.Principal())
	api.GET("/health", h.Health)
	api.GET("/ping", h.Ping)
	api.GET("/stats", h.Stats)
	api.GET("/config", h.GetConfig)
	api.POST("/zones/batchrecordchanges", h.ApplyBatchChange)
	api.GET("/zones/batchrecordchanges/:id", h.GetBatchChange)
	api.GET("/zones/batchrecordchanges", h.ListBatchChangeSummaries)
	return r
}
