package config_test

import (
	"testing"
	"time"

	"github.com/zenapp/council/config"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("Expected error without ANTHROPIC_API_KEY")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LLM.Model != "claude-sonnet-4-20250514" {
		t.Errorf("Unexpected default model: %s", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 1024 {
		t.Errorf("Unexpected default max tokens: %d", cfg.LLM.MaxTokens)
	}
	if cfg.Retrieval.TopK != 3 || cfg.Retrieval.MinSimilarity != 0.5 {
		t.Errorf("Unexpected retrieval defaults: %+v", cfg.Retrieval)
	}
	if cfg.Routing.DiscoveryThreshold != 20 || cfg.Routing.ContinuityMargin != 1 || cfg.Routing.HistoryWindow != 10 {
		t.Errorf("Unexpected routing defaults: %+v", cfg.Routing)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("COUNCIL_MODEL", "claude-opus-4-20250514")
	t.Setenv("COUNCIL_MAX_TOKENS", "2048")
	t.Setenv("COUNCIL_TEMPERATURE", "0.2")
	t.Setenv("COUNCIL_LLM_TIMEOUT", "90s")
	t.Setenv("COUNCIL_RETRIEVAL_TOP_K", "5")
	t.Setenv("COUNCIL_DATA_PATH", ":memory:")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LLM.Model != "claude-opus-4-20250514" {
		t.Errorf("Model override ignored: %s", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 2048 {
		t.Errorf("MaxTokens override ignored: %d", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Temperature != 0.2 {
		t.Errorf("Temperature override ignored: %f", cfg.LLM.Temperature)
	}
	if cfg.LLM.Timeout != 90*time.Second {
		t.Errorf("Timeout override ignored: %s", cfg.LLM.Timeout)
	}
	if cfg.Retrieval.TopK != 5 {
		t.Errorf("TopK override ignored: %d", cfg.Retrieval.TopK)
	}
	if cfg.Storage.DataPath != ":memory:" {
		t.Errorf("DataPath override ignored: %s", cfg.Storage.DataPath)
	}
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("COUNCIL_MAX_TOKENS", "not-a-number")
	t.Setenv("COUNCIL_TEMPERATURE", "hot")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LLM.MaxTokens != 1024 {
		t.Errorf("Unparseable MaxTokens should fall back to default, got %d", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Temperature != 0.7 {
		t.Errorf("Unparseable Temperature should fall back to default, got %f", cfg.LLM.Temperature)
	}
}
