package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Workflow.SweepSchedule != "* * * * *" {
		t.Errorf("expected default sweep schedule, got %s", cfg.Workflow.SweepSchedule)
	}
}

func TestLoadYAMLFileIgnoresDurationKeys(t *testing.T) {
	// Duration settings are env-only; duration-looking keys in the YAML
	// file must not break parsing or override the defaults.
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: "9090"
  read_timeout: 45s
database:
  name: editorial_test
  max_lifetime: 10m
workflow:
  queue_page_size: 50
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090 from file, got %s", cfg.Server.Port)
	}
	if cfg.Database.Name != "editorial_test" {
		t.Errorf("expected database name from file, got %s", cfg.Database.Name)
	}
	if cfg.Workflow.QueuePageSize != 50 {
		t.Errorf("expected queue page size 50 from file, got %d", cfg.Workflow.QueuePageSize)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("expected default read timeout, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Database.MaxLifetime != 5*time.Minute {
		t.Errorf("expected default max lifetime, got %s", cfg.Database.MaxLifetime)
	}
}

func TestLoadDurationEnvOverride(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("expected read timeout 45s from env, got %s", cfg.Server.ReadTimeout)
	}
}
