package config

import "testing"

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Batch.ChangeLimit != 1000 {
		t.Errorf("expected default change limit 1000, got %d", cfg.Batch.ChangeLimit)
	}
	if cfg.Batch.MaxSummaryPageSize != 100 {
		t.Errorf("expected default max summary page size 100, got %d", cfg.Batch.MaxSummaryPageSize)
	}
	if cfg.API.Host != "0.0.0.0" {
		t.Errorf("expected default API host 0.0.0.0, got %s", cfg.API.Host)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("expected default API port 8080, got %d", cfg.API.Port)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("expected default log level INFO, got %s", cfg.Logging.Level)
	}
}

func TestValidateRejectsInvertedTTLBounds(t *testing.T) {
	cfg := &Config{Batch: BatchConfig{MinTTL: 500, MaxTTL: 100}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for min-ttl > max-ttl")
	}
}

func TestValidateRejectsNegativeMinTTL(t *testing.T) {
	cfg := &Config{Batch: BatchConfig{MinTTL: -1}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative min-ttl")
	}
}

func TestValidateRejectsBadHighValueDomainPattern(t *testing.T) {
	cfg := &Config{Batch: BatchConfig{HighValueDomains: []string{"("}}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid regex")
	}
}

func TestIsHighValueDomain(t *testing.T) {
	cfg := &Config{Batch: BatchConfig{HighValueDomains: []string{`^admin\.example\.com\.$`}}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsHighValueDomain("admin.example.com.") {
		t.Error("expected admin.example.com. to match high-value-domains")
	}
	if cfg.IsHighValueDomain("other.example.com.") {
		t.Error("expected other.example.com. not to match high-value-domains")
	}
}

func TestIsApprovedNameServer(t *testing.T) {
	cfg := &Config{Batch: BatchConfig{ApprovedNameServers: []string{"ns1.example.com."}}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsApprovedNameServer("ns1.example.com") {
		t.Error("expected trailing-dot-insensitive match")
	}
	if cfg.IsApprovedNameServer("ns2.example.com.") {
		t.Error("expected non-approved nameserver to be rejected")
	}
}

func TestRedactedClearsAPIKey(t *testing.T) {
	cfg := Config{API: APIConfig{APIKey: "super-secret"}}
	redacted := cfg.Redacted()
	if redacted.API.APIKey != "" {
		t.Error("expected Redacted to clear the API key")
	}
	if cfg.API.APIKey == "" {
		t.Error("Redacted should not mutate the receiver")
	}
}
