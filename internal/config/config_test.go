// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, duration parsing, and defaults

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  http_addr: "0.0.0.0:8090"

backend:
  base_url: "http://backend.internal:8000"
  timeout: "15s"
  audio_path: "/audio"

monitor:
  poll_interval: "5s"
  page_size: 20

simulator:
  session_ttl: "45m"
  max_sessions: 32

logging:
  level: "debug"
  format: "json"

dev_mode: true
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8090" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8090")
	}
	if cfg.Backend.BaseURL != "http://backend.internal:8000" {
		t.Errorf("Backend.BaseURL = %q, want %q", cfg.Backend.BaseURL, "http://backend.internal:8000")
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Errorf("Backend.Timeout = %v, want 15s", cfg.Backend.Timeout)
	}
	if cfg.Monitor.PollInterval != 5*time.Second {
		t.Errorf("Monitor.PollInterval = %v, want 5s", cfg.Monitor.PollInterval)
	}
	if cfg.Monitor.PageSize != 20 {
		t.Errorf("Monitor.PageSize = %d, want 20", cfg.Monitor.PageSize)
	}
	if cfg.Simulator.SessionTTL != 45*time.Minute {
		t.Errorf("Simulator.SessionTTL = %v, want 45m", cfg.Simulator.SessionTTL)
	}
	if cfg.Simulator.MaxSessions != 32 {
		t.Errorf("Simulator.MaxSessions = %d, want 32", cfg.Simulator.MaxSessions)
	}
	if !cfg.DevMode {
		t.Error("DevMode = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("TEST_AIRA_BACKEND", "http://expanded.example:9000")

	configContent := `
server:
  http_addr: "127.0.0.1:8090"
backend:
  base_url: "${TEST_AIRA_BACKEND}"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend.BaseURL != "http://expanded.example:9000" {
		t.Errorf("Backend.BaseURL = %q, want expanded env value", cfg.Backend.BaseURL)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  http_addr: "127.0.0.1:8090"
backend:
  base_url: "http://backend:8000"
monitor:
  poll_interval: "five seconds"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for invalid duration, got nil")
	}
	if !strings.Contains(err.Error(), "poll_interval") {
		t.Errorf("error %q should mention poll_interval", err)
	}
}

func TestLoad_RelativeBackendURL(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  http_addr: "127.0.0.1:8090"
backend:
  base_url: "not a url"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for relative backend URL, got nil")
	}
}

func TestLoad_TailscaleRequiresHostname(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
backend:
  base_url: "http://backend:8000"
tailscale:
  enabled: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for tailscale without hostname, got nil")
	}
	if !strings.Contains(err.Error(), "hostname") {
		t.Errorf("error %q should mention hostname", err)
	}
}

func TestLoad_TailscaleOptions(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
backend:
  base_url: "http://backend:8000"
tailscale:
  enabled: true
  hostname: "aira-console"
  state_dir: "/var/lib/aira/tsnet"
  ephemeral: true
  https: true
  funnel: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	ts := cfg.Tailscale
	if ts.Hostname != "aira-console" {
		t.Errorf("Hostname = %q, want aira-console", ts.Hostname)
	}
	if ts.StateDir != "/var/lib/aira/tsnet" {
		t.Errorf("StateDir = %q, want /var/lib/aira/tsnet", ts.StateDir)
	}
	if !ts.Ephemeral || !ts.HTTPS || !ts.Funnel {
		t.Errorf("ephemeral/https/funnel = %v/%v/%v, want all true", ts.Ephemeral, ts.HTTPS, ts.Funnel)
	}
}

func TestLoad_PollIntervalLowerBound(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  http_addr: "127.0.0.1:8090"
backend:
  base_url: "http://backend:8000"
monitor:
  poll_interval: "100ms"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for sub-second poll interval, got nil")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Setenv("AIRA_BACKEND_URL", "http://from-env.example:8000")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}

	if cfg.Backend.BaseURL != "http://from-env.example:8000" {
		t.Errorf("Backend.BaseURL = %q, want env-provided origin", cfg.Backend.BaseURL)
	}
	if cfg.Monitor.PollInterval != 5*time.Second {
		t.Errorf("Monitor.PollInterval = %v, want default 5s", cfg.Monitor.PollInterval)
	}
}

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() config does not validate: %v", err)
	}
	if cfg.Monitor.PageSize != 20 {
		t.Errorf("Monitor.PageSize = %d, want 20", cfg.Monitor.PageSize)
	}
	if cfg.Simulator.SessionTTL != 30*time.Minute {
		t.Errorf("Simulator.SessionTTL = %v, want 30m", cfg.Simulator.SessionTTL)
	}
}
