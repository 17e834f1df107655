// Package config provides the configuration type for HydraBatch and
// validation/defaulting utilities. Following the convention its HydraDNS
// predecessor used, a Config struct is filled in from file/environment
// by the caller and normalized in one pass by Validate — defaults belong
// here, not scattered across the zero value.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ResolveConfigPath returns flagValue if set, falling back to the
// HYDRABATCH_CONFIG environment variable, and finally the empty string
// (meaning: run with defaults, no file on disk).
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("HYDRABATCH_CONFIG")
}

// Load reads and validates the configuration at path. An empty path
// returns a defaulted Config rather than an error, so the service can
// run with no file present.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate validates and normalizes cfg, filling in defaults.
func (cfg *Config) Validate() error {
	if cfg.Batch.ChangeLimit <= 0 {
		cfg.Batch.ChangeLimit = 1000
	}
	if cfg.Batch.MinTTL < 0 {
		return errors.New("batch.min-ttl must be >= 0")
	}
	if cfg.Batch.MaxTTL <= 0 {
		cfg.Batch.MaxTTL = 2147483647
	}
	if cfg.Batch.MinTTL > cfg.Batch.MaxTTL {
		return errors.New("batch.min-ttl must be <= batch.max-ttl")
	}
	if cfg.Batch.MaxSummaryPageSize <= 0 {
		cfg.Batch.MaxSummaryPageSize = 100
	}

	compiled := make([]*regexp.Regexp, 0, len(cfg.Batch.HighValueDomains))
	for _, pattern := range cfg.Batch.HighValueDomains {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("batch.high-value-domains: invalid pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	cfg.Batch.compiledHighValueDomains = compiled

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	// Normalize management API
	if cfg.API.Host == "" {
		cfg.API.Host = "0.0.0.0"
	}
	if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
		cfg.API.Port = 8080
	}

	return nil
}

// IsHighValueDomain reports whether name matches any configured
// high-value-domain pattern. Validate must run first; calling this
// beforehand always reports false.
func (cfg *Config) IsHighValueDomain(name string) bool {
	for _, re := range cfg.Batch.compiledHighValueDomains {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// IsApprovedNameServer reports whether ns is present in
// ApprovedNameServers (case-insensitive, trailing-dot insensitive).
func (cfg *Config) IsApprovedNameServer(ns string) bool {
	trimmed := strings.ToLower(strings.TrimSuffix(ns, "."))
	for _, approved := range cfg.Batch.ApprovedNameServers {
		if strings.ToLower(strings.TrimSuffix(approved, ".")) == trimmed {
			return true
		}
	}
	return false
}

// Redacted returns a copy of cfg with APIConfig.APIKey cleared, suitable
// for the GET /config endpoint.
func (cfg Config) Redacted() Config {
	cfg.API.APIKey = ""
	return cfg
}
