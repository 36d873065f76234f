// ABOUTME: Centralized configuration for the recall memory service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/harper/recall/internal/models"
)

// Config holds all configuration for the recall service.
type Config struct {
	// Storage settings
	DBPath string

	// OpenAI settings
	OpenAIKey      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Search settings
	SearchThreshold float64
	SearchCount     int
	MaxSearchCount  int

	// HTTP server settings
	HTTPAddr string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:          getEnv("RECALL_DB_PATH", ""),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:  getEnv("RECALL_EMBEDDING_MODEL", models.DefaultEmbeddingModel),
		Timeout:         getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		SearchThreshold: getEnvFloat("RECALL_SEARCH_THRESHOLD", 0.5),
		SearchCount:     getEnvInt("RECALL_SEARCH_COUNT", 5),
		MaxSearchCount:  getEnvInt("RECALL_MAX_SEARCH_COUNT", 25),
		HTTPAddr:        getEnv("RECALL_HTTP_ADDR", ":8484"),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if _, err := models.ModelDimension(c.EmbeddingModel); err != nil {
		return fmt.Errorf("RECALL_EMBEDDING_MODEL: %w", err)
	}
	if c.SearchThreshold < 0 || c.SearchThreshold > 1 {
		return fmt.Errorf("RECALL_SEARCH_THRESHOLD must be 0-1, got %f", c.SearchThreshold)
	}
	if c.SearchCount <= 0 {
		return fmt.Errorf("RECALL_SEARCH_COUNT must be positive, got %d", c.SearchCount)
	}
	if c.MaxSearchCount < c.SearchCount {
		return fmt.Errorf("RECALL_MAX_SEARCH_COUNT (%d) must be >= RECALL_SEARCH_COUNT (%d)",
			c.MaxSearchCount, c.SearchCount)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
