package fixtured

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds fixture service configuration
type Config struct {
	Port          int
	DBPath        string // Path to bbolt database (empty = no persistence)
	UploadDir     string // Root of the stored fixture tree
	MaxUploadMB   int64  // Per-request upload cap
	SweepInterval time.Duration
	SeqURL        string // Seq ingestion endpoint (empty = console logging only)
	LogLevel      slog.Level
}

// LoadConfig reads configuration from environment variables with defaults.
// CLI flags are layered on top of these values.
func LoadConfig() Config {
	return Config{
		Port:          getIntEnv("FIXTURED_PORT", 8080),
		DBPath:        getEnv("FIXTURED_DB", ""),
		UploadDir:     getEnv("FIXTURED_UPLOADS", "./data/uploads"),
		MaxUploadMB:   getInt64Env("FIXTURED_MAX_UPLOAD_MB", 200),
		SweepInterval: getDurationEnv("FIXTURED_SWEEP_INTERVAL", 30*time.Second),
		SeqURL:        getEnv("FIXTURED_SEQ_URL", ""),
		LogLevel:      getLevelEnv("FIXTURED_LOG_LEVEL", slog.LevelInfo),
	}
}

// Validate checks that the configuration is usable.
// It returns an error describing all validation failures, or nil if valid.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be in 1..65535, got %d", c.Port))
	}
	if c.UploadDir == "" {
		errs = append(errs, errors.New("upload dir is required"))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("max upload must be positive, got %d MB", c.MaxUploadMB))
	}
	if c.SweepInterval < time.Second {
		errs = append(errs, fmt.Errorf("sweep interval must be at least 1s, got %v", c.SweepInterval))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// MaxUploadBytes returns the upload cap in bytes
func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getLevelEnv(key string, defaultValue slog.Level) slog.Level {
	var level slog.Level
	if value := os.Getenv(key); value != "" {
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return defaultValue
}
