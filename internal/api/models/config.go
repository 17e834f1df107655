package models

// APIConfigResponse is a redacted view of APIConfig (no api_key exposed).
type APIConfigResponse struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

// BatchConfigResponse is the GET /config response body: the
// batch-relevant configuration, with the management API key always
// omitted.
type BatchConfigResponse struct {
	BatchChangeLimit    int      `json:"batchChangeLimit"`
	MinTTL              int      `json:"minTTL"`
	MaxTTL              int      `json:"maxTTL"`
	ApprovedNameServers []string `json:"approvedNameServers"`
	HighValueDomains    []string `json:"highValueDomains"`
	MaxSummaryPageSize  int      `json:"maxSummaryPageSize"`
}

// ConfigResponse is the API response for GET /config.
type ConfigResponse struct {
	Batch   BatchConfigResponse `json:"batch"`
	Logging LoggingConfigResponse `json:"logging"`
	API     APIConfigResponse   `json:"api"`
}

// LoggingConfigResponse mirrors config.LoggingConfig for the export endpoint.
type LoggingConfigResponse struct {
	Level            string `json:"level"`
	Structured       bool   `json:"structured"`
	StructuredFormat string `json:"structuredFormat"`
}
