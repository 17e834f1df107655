package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/hydrabatch/hydrabatch/internal/api/models"
)

// Health godoc
// @Summary Health check
// @Description Returns server health status
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Ping godoc
// @Summary Liveness probe
// @Description Returns the literal string PONG
// @Tags system
// @Produce plain
// @Success 200 {string} string "PONG"
// @Router /ping [get]
func (h *Handler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "PONG")
}

// Stats godoc
// @Summary Process statistics
// @Description Returns runtime and process resource statistics
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security ApiKeyAuth
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		Process:       h.processStats(),
	}

	c.JSON(http.StatusOK, resp)
}

// processStats reads this process's resource usage via gopsutil. A
// failure to read any one field leaves it zero rather than failing the
// whole request — stats are best-effort.
func (h *Handler) processStats() models.ProcessStatsResponse {
	var resp models.ProcessStatsResponse

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("failed to open process handle for stats", "error", err)
		}
		return resp
	}

	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		resp.RSSBytes = mem.RSS
	}
	if pct, err := proc.CPUPercent(); err == nil {
		resp.CPUPercent = pct
	}
	if fds, err := proc.NumFDs(); err == nil {
		resp.OpenFileDescs = fds
	}

	return resp
}
