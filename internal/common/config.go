package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Verify VerifyConfig
	LLM    LLMConfig
	Export ExportConfig
}

// VerifyConfig holds the calibration knobs for the verification pipeline.
// Thresholds are deployment configuration, not code constants.
type VerifyConfig struct {
	AcceptThreshold     float64
	ReviewThreshold     float64
	SimilarityThreshold float64
	TablesPath          string // optional YAML override for lookup tables
}

// LLMConfig holds extraction-backend configuration
type LLMConfig struct {
	Backend     string // "openai" | "openrouter"
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// ExportConfig holds review-export configuration
type ExportConfig struct {
	ReviewSheetDir string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Verify: VerifyConfig{
			AcceptThreshold:     getEnvAsFloat64("VERIFY_ACCEPT_THRESHOLD", 0.85),
			ReviewThreshold:     getEnvAsFloat64("VERIFY_REVIEW_THRESHOLD", 0.60),
			SimilarityThreshold: getEnvAsFloat64("VERIFY_SIMILARITY_THRESHOLD", 0.60),
			TablesPath:          getEnv("VERIFY_TABLES_PATH", ""),
		},
		LLM: LLMConfig{
			Backend:     getEnv("LLM_BACKEND", "openai"),
			Model:       getEnv("LLM_MODEL", ""),
			APIKey:      getEnv("LLM_API_KEY", ""),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Export: ExportConfig{
			ReviewSheetDir: getEnv("REVIEW_SHEET_DIR", "./out"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	v := c.Verify
	if v.AcceptThreshold <= 0 || v.AcceptThreshold > 1 {
		return NewAppError("CONFIG_ERROR", "VERIFY_ACCEPT_THRESHOLD must be in (0,1]", ErrInvalidInput)
	}
	if v.ReviewThreshold <= 0 || v.ReviewThreshold >= v.AcceptThreshold {
		return NewAppError("CONFIG_ERROR", "VERIFY_REVIEW_THRESHOLD must be in (0, accept)", ErrInvalidInput)
	}
	if v.SimilarityThreshold <= 0 || v.SimilarityThreshold > 1 {
		return NewAppError("CONFIG_ERROR", "VERIFY_SIMILARITY_THRESHOLD must be in (0,1]", ErrInvalidInput)
	}
	return nil
}
