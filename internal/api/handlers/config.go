package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hydrabatch/hydrabatch/internal/api/models"
)

// GetConfig godoc
// @Summary Get current configuration
// @Description Returns the current batch-pipeline configuration (sensitive fields redacted)
// @Tags config
// @Produce json
// @Success 200 {object} models.ConfigResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	if h.cfg == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "config unavailable"})
		return
	}

	resp := models.ConfigResponse{
		Batch: models.BatchConfigResponse{
			BatchChangeLimit:    h.cfg.Batch.ChangeLimit,
			MinTTL:              h.cfg.Batch.MinTTL,
			MaxTTL:              h.cfg.Batch.MaxTTL,
			ApprovedNameServers: h.cfg.Batch.ApprovedNameServers,
			HighValueDomains:    h.cfg.Batch.HighValueDomains,
			MaxSummaryPageSize:  h.cfg.Batch.MaxSummaryPageSize,
		},
		Logging: models.LoggingConfigResponse{
			Level:            h.cfg.Logging.Level,
			Structured:       h.cfg.Logging.Structured,
			StructuredFormat: h.cfg.Logging.StructuredFormat,
		},
		API: models.APIConfigResponse{
			Enabled: h.cfg.API.Enabled,
			Host:    h.cfg.API.Host,
			Port:    h.cfg.API.Port,
		},
	}

	c.JSON(http.StatusOK, resp)
}
