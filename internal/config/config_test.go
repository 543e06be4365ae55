package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gojkop/mindpick/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.RefreshInterval != time.Minute {
		t.Fatalf("expected 1m refresh interval, got %v", cfg.RefreshInterval)
	}
	if cfg.DefaultSLAHours != 24 {
		t.Fatalf("expected 24h default SLA, got %v", cfg.DefaultSLAHours)
	}
	if cfg.Xano.Retries != 3 {
		t.Fatalf("expected 3 retries, got %d", cfg.Xano.Retries)
	}
}

func TestLoadConfig_YAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "addr: \":9999\"\nrefresh_interval: 30s\nxano:\n  base_url: https://x8ki.xano.io/api:mp\n  retries: 7\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("expected addr :9999, got %q", cfg.Addr)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Fatalf("expected 30s refresh interval, got %v", cfg.RefreshInterval)
	}
	if cfg.Xano.Retries != 7 {
		t.Fatalf("expected 7 retries, got %d", cfg.Xano.Retries)
	}
}

func TestValidate_InsecureJWT_FailsWhenNotDevelopment(t *testing.T) {
	os.Setenv("MINDPICK_ENV", "production")
	defer os.Unsetenv("MINDPICK_ENV")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for insecure JWT outside development")
	}
}

func TestValidate_AllowsDevelopment(t *testing.T) {
	os.Setenv("MINDPICK_ENV", "development")
	defer os.Unsetenv("MINDPICK_ENV")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development, got: %v", err)
	}
}

func TestValidate_RejectsNonPositiveIntervals(t *testing.T) {
	os.Setenv("MINDPICK_ENV", "development")
	defer os.Unsetenv("MINDPICK_ENV")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	cfg.RefreshInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to reject zero refresh_interval")
	}
}
