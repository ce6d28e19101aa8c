package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AnalyzerConfig holds the mock analyzer settings: the two fixed delays
// that simulate upload and processing latency, the injected failure rate,
// and an optional RNG seed for deterministic profile selection.
type AnalyzerConfig struct {
	UploadDelayMs     int     `validate:"gte=0"`
	ProcessingDelayMs int     `validate:"gte=0"`
	FailureRate       float64 `validate:"gte=0,lte=1"`
	Seed              int64
}

// UploadConfig holds upload validation settings.
type UploadConfig struct {
	MaxBytes int64 `validate:"gt=0"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	AppHost     string `validate:"required"`
	Port        string `validate:"required,numeric"`
	CORSOrigins string
	SeedHistory bool
	Upload      UploadConfig
	Analyzer    AnalyzerConfig
}

// DefaultMaxUploadBytes is the upload size cap: 10 MiB, matching the
// front-end's accepted limit.
const DefaultMaxUploadBytes = 10 * 1024 * 1024

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		SeedHistory: getEnvBool("SEED_HISTORY", true),
		Upload: UploadConfig{
			MaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", DefaultMaxUploadBytes)),
		},
		Analyzer: AnalyzerConfig{
			UploadDelayMs:     getEnvInt("ANALYZER_UPLOAD_DELAY_MS", 1500),
			ProcessingDelayMs: getEnvInt("ANALYZER_PROCESSING_DELAY_MS", 2000),
			FailureRate:       getEnvFloat("ANALYZER_FAILURE_RATE", 0),
			Seed:              int64(getEnvInt("ANALYZER_SEED", 0)),
		},
	}
}

// Validate checks the loaded configuration against the struct tags.
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Origins splits the comma-separated CORS origin list.
func (c *AppConfig) Origins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
