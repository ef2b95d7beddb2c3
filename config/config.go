// Package config loads council configuration from environment variables
// with the COUNCIL_ prefix and provides sensible defaults for everything
// except the Anthropic API key.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for a council instance.
type Config struct {
	LLM       LLMConfig
	Retrieval RetrievalConfig
	Routing   RoutingConfig
	Storage   StorageConfig
}

// LLMConfig contains generation settings.
type LLMConfig struct {
	APIKey      string        // Anthropic API key (env: ANTHROPIC_API_KEY, required)
	Model       string        // Model name (default: claude-sonnet-4-20250514)
	MaxTokens   int64         // Max response tokens (default: 1024)
	Temperature float64       // Sampling temperature (default: 0.7)
	Timeout     time.Duration // Per-request timeout (default: 60s)
}

// RetrievalConfig contains journal retrieval settings.
type RetrievalConfig struct {
	TopK          int     // Max entries per query (default: 3)
	MinSimilarity float64 // Similarity threshold (default: 0.5)
	ContextBudget int     // Max grounding characters (default: 2000)
}

// RoutingConfig contains routing and discovery settings.
type RoutingConfig struct {
	DiscoveryThreshold int // Opener rune length below which discovery triggers (default: 20)
	ContinuityMargin   int // Score margin for retaining the current mentor (default: 1)
	HistoryWindow      int // Messages sent to the model per turn (default: 10)
}

// StorageConfig contains persistence settings.
type StorageConfig struct {
	// DataPath is the SQLite database path, or ":memory:" to keep
	// everything in memory (default: ./council.db).
	DataPath string
}

// Load builds a Config from environment variables. It fails only when the
// Anthropic API key is missing.
func Load() (*Config, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}

	return &Config{
		LLM: LLMConfig{
			APIKey:      apiKey,
			Model:       getEnv("COUNCIL_MODEL", "claude-sonnet-4-20250514"),
			MaxTokens:   int64(getEnvInt("COUNCIL_MAX_TOKENS", 1024)),
			Temperature: getEnvFloat("COUNCIL_TEMPERATURE", 0.7),
			Timeout:     getEnvDuration("COUNCIL_LLM_TIMEOUT", 60*time.Second),
		},
		Retrieval: RetrievalConfig{
			TopK:          getEnvInt("COUNCIL_RETRIEVAL_TOP_K", 3),
			MinSimilarity: getEnvFloat("COUNCIL_RETRIEVAL_THRESHOLD", 0.5),
			ContextBudget: getEnvInt("COUNCIL_CONTEXT_BUDGET", 2000),
		},
		Routing: RoutingConfig{
			DiscoveryThreshold: getEnvInt("COUNCIL_DISCOVERY_THRESHOLD", 20),
			ContinuityMargin:   getEnvInt("COUNCIL_CONTINUITY_MARGIN", 1),
			HistoryWindow:      getEnvInt("COUNCIL_HISTORY_WINDOW", 10),
		},
		Storage: StorageConfig{
			DataPath: getEnv("COUNCIL_DATA_PATH", "./council.db"),
		},
	}, nil
}

// getEnv retrieves a string environment variable or returns a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default.
// Unparseable values fall back to the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns a
// default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
