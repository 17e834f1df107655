package config

import "regexp"

// BatchConfig holds the options recognized from §6 of the specification.
type BatchConfig struct {
	// ChangeLimit is the maximum number of changes permitted in a single
	// batch. Defaults to 1000.
	ChangeLimit int `json:"batch-change-limit"`

	// ApprovedNameServers is the allow-list for NS record targets.
	ApprovedNameServers []string `json:"approved-name-servers"`

	// MinTTL / MaxTTL bound every change's TTL, inclusive.
	MinTTL int `json:"min-ttl"`
	MaxTTL int `json:"max-ttl"`

	// HighValueDomains is a list of regexes; a change whose input name
	// matches any of them is rejected regardless of zone ownership.
	HighValueDomains []string `json:"high-value-domains"`

	// MaxSummaryPageSize is the configured ceiling listBatchChangeSummaries
	// clamps its caller-supplied maxItems against.
	MaxSummaryPageSize int `json:"max-summary-page-size"`

	compiledHighValueDomains []*regexp.Regexp
}

// SyncDelayConfig is carried through config purely so it round-trips via
// JSON export/import; the batch pipeline itself never reads it (§6: "sync
// delay... unrelated to the core pipeline; consumed by zone sync").
type SyncDelayConfig struct {
	Millis int `json:"sync-delay"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `json:"level"`
	Structured       bool              `json:"structured"`
	StructuredFormat string            `json:"structured_format"`
	IncludePID       bool              `json:"include_pid"`
	ExtraFields      map[string]string `json:"extra_fields,omitempty"`
}

// APIConfig contains management API settings.
//
// Note: APIKey is intentionally treated as a secret and should not be returned by API endpoints.
type APIConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
	APIKey  string `json:"api_key,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Batch     BatchConfig     `json:"batch"`
	Logging   LoggingConfig   `json:"logging"`
	API       APIConfig       `json:"api"`
	SyncDelay SyncDelayConfig `json:"syncDelay"`
}
