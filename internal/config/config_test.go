package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/asingla/credscope/internal/core/domain"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("GEMINI_REQUESTS_PER_MINUTE", "")
	t.Setenv("SCORE_CACHE_TTL_HOURS", "")
	t.Setenv("NATS_SUBJECT", "")

	cfg := Load()
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("expected default gemini model, got %q", cfg.GeminiModel)
	}
	if cfg.GeminiRPM != 15 {
		t.Fatalf("expected default 15 rpm, got %d", cfg.GeminiRPM)
	}
	if cfg.ScoreCacheTTL != 24*time.Hour {
		t.Fatalf("expected default 24h cache ttl, got %s", cfg.ScoreCacheTTL)
	}
	if cfg.NATSSubject != "submissions.received" {
		t.Fatalf("expected default subject, got %q", cfg.NATSSubject)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("GEMINI_REQUESTS_PER_MINUTE", "60")
	t.Setenv("SCORE_CACHE_TTL_HOURS", "6")
	t.Setenv("BREAKER_FAILURE_RATIO", "0.75")
	t.Setenv("BREAKER_ENABLED", "false")

	cfg := Load()
	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Fatalf("expected model override, got %q", cfg.GeminiModel)
	}
	if cfg.GeminiRPM != 60 {
		t.Fatalf("expected 60 rpm, got %d", cfg.GeminiRPM)
	}
	if cfg.ScoreCacheTTL != 6*time.Hour {
		t.Fatalf("expected 6h cache ttl, got %s", cfg.ScoreCacheTTL)
	}
	if cfg.BreakerFailureRatio != 0.75 {
		t.Fatalf("expected failure ratio 0.75, got %v", cfg.BreakerFailureRatio)
	}
	if cfg.BreakerEnabled {
		t.Fatalf("expected breaker disabled")
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("GEMINI_REQUESTS_PER_MINUTE", "lots")
	t.Setenv("BREAKER_FAILURE_RATIO", "half")

	cfg := Load()
	if cfg.GeminiRPM != 15 {
		t.Fatalf("expected fallback 15 rpm for malformed value, got %d", cfg.GeminiRPM)
	}
	if cfg.BreakerFailureRatio != 0.5 {
		t.Fatalf("expected fallback ratio 0.5, got %v", cfg.BreakerFailureRatio)
	}
}

func TestLoadPricingTablesDefaultsWithoutPath(t *testing.T) {
	tables, err := LoadPricingTables("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tables.GlobalEMIRatioCap != 0.40 {
		t.Fatalf("expected shipped EMI cap 0.40, got %v", tables.GlobalEMIRatioCap)
	}
	if tables.TenureMonths[domain.LoanHome] != 240 {
		t.Fatalf("expected 240 month home tenure, got %d", tables.TenureMonths[domain.LoanHome])
	}
}

func TestLoadPricingTablesOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	content := `
global_emi_ratio_cap: 0.35
tenure_months:
  home: 180
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write pricing file: %v", err)
	}

	tables, err := LoadPricingTables(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tables.GlobalEMIRatioCap != 0.35 {
		t.Fatalf("expected overridden EMI cap 0.35, got %v", tables.GlobalEMIRatioCap)
	}
	if tables.TenureMonths[domain.LoanHome] != 180 {
		t.Fatalf("expected overridden home tenure 180, got %d", tables.TenureMonths[domain.LoanHome])
	}
	// Untouched fields keep their defaults.
	if tables.DecisionEMISalaryRatio != 0.30 {
		t.Fatalf("expected default decision EMI ratio 0.30, got %v", tables.DecisionEMISalaryRatio)
	}
}

func TestLoadPricingTablesMissingFileErrors(t *testing.T) {
	if _, err := LoadPricingTables(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing pricing file")
	}
}
