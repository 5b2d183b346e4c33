package fixtured

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FIXTURED_PORT", "9090")
	t.Setenv("FIXTURED_DB", "/tmp/catalog.db")
	t.Setenv("FIXTURED_MAX_UPLOAD_MB", "32")
	t.Setenv("FIXTURED_SWEEP_INTERVAL", "5s")
	t.Setenv("FIXTURED_LOG_LEVEL", "debug")

	cfg := LoadConfig()

	if cfg.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Port)
	}
	if cfg.DBPath != "/tmp/catalog.db" {
		t.Errorf("Expected db path /tmp/catalog.db, got %s", cfg.DBPath)
	}
	if cfg.MaxUploadMB != 32 {
		t.Errorf("Expected max upload 32 MB, got %d", cfg.MaxUploadMB)
	}
	if cfg.SweepInterval != 5*time.Second {
		t.Errorf("Expected sweep interval 5s, got %v", cfg.SweepInterval)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("Expected debug log level, got %v", cfg.LogLevel)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FIXTURED_PORT", "")
	t.Setenv("FIXTURED_UPLOADS", "")
	t.Setenv("FIXTURED_MAX_UPLOAD_MB", "")
	t.Setenv("FIXTURED_SWEEP_INTERVAL", "")

	cfg := LoadConfig()

	if cfg.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Port)
	}
	if cfg.UploadDir != "./data/uploads" {
		t.Errorf("Expected default upload dir, got %s", cfg.UploadDir)
	}
	if cfg.MaxUploadMB != 200 {
		t.Errorf("Expected default max upload 200 MB, got %d", cfg.MaxUploadMB)
	}
	if cfg.SweepInterval != 30*time.Second {
		t.Errorf("Expected default sweep interval 30s, got %v", cfg.SweepInterval)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Port:          8080,
		UploadDir:     "./data/uploads",
		MaxUploadMB:   200,
		SweepInterval: 30 * time.Second,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}

	bad := Config{Port: -1}
	err := bad.Validate()
	if err == nil {
		t.Fatal("Expected validation errors")
	}

	for _, want := range []string{"port", "upload dir", "max upload", "sweep interval"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected validation error mentioning %q, got: %v", want, err)
		}
	}
}

func TestMaxUploadBytes(t *testing.T) {
	cfg := Config{MaxUploadMB: 2}
	if got := cfg.MaxUploadBytes(); got != 2<<20 {
		t.Errorf("Expected %d bytes, got %d", 2<<20, got)
	}
}
