package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrabatch/hydrabatch/internal/api/models"
)

func TestGetConfigReturnsBatchSettings(t *testing.T) {
	r := setupTestRouter(newTestHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1000, resp.Batch.BatchChangeLimit)
	assert.Equal(t, 100, resp.Batch.MaxSummaryPageSize)
}
