package models

import "time"

// ServerStatsResponse contains server runtime statistics.
type ServerStatsResponse struct {
	Uptime        string               `json:"uptime"`
	UptimeSeconds int64                `json:"uptime_seconds"`
	StartTime     time.Time            `json:"start_time"`
	GoRoutines    int                  `json:"goroutines"`
	NumCPU        int                  `json:"num_cpu"`
	Process       ProcessStatsResponse `json:"process"`
}

// ProcessStatsResponse contains process-level resource usage, sourced
// from gopsutil rather than Go's own runtime counters.
type ProcessStatsResponse struct {
	RSSBytes      uint64  `json:"rss_bytes"`
	CPUPercent    float64 `json:"cpu_percent"`
	OpenFileDescs int32   `json:"open_file_descriptors"`
}
