// ABOUTME: Configuration loading and parsing for aira-console
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete aira-console configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Logging   LoggingConfig   `yaml:"logging"`
	DevMode   bool            `yaml:"dev_mode"`
}

// ServerConfig holds the console's listen address
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// BackendConfig selects the external Aira backend
type BackendConfig struct {
	BaseURL   string `yaml:"base_url"`
	AudioPath string `yaml:"audio_path"` // serving path for bare audio filenames

	Timeout    time.Duration `yaml:"-"`
	TimeoutRaw string        `yaml:"timeout"`
}

// MonitorConfig holds live monitor polling configuration
type MonitorConfig struct {
	PollInterval    time.Duration `yaml:"-"`
	PollIntervalRaw string        `yaml:"poll_interval"`
	PageSize        int           `yaml:"page_size"` // rows per page in call listings
}

// SimulatorConfig bounds in-memory simulator sessions
type SimulatorConfig struct {
	SessionTTL    time.Duration `yaml:"-"`
	SessionTTLRaw string        `yaml:"session_ttl"`
	MaxSessions   int           `yaml:"max_sessions"`
}

// TailscaleConfig holds Tailscale tsnet configuration
type TailscaleConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Hostname  string `yaml:"hostname"`
	AuthKey   string `yaml:"auth_key"`
	StateDir  string `yaml:"state_dir"`
	Ephemeral bool   `yaml:"ephemeral"`
	HTTPS     bool   `yaml:"https"`  // Serve TLS with Tailscale-provisioned certs
	Funnel    bool   `yaml:"funnel"` // Enable public Funnel (implies HTTPS)
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no config file exists. The
// backend origin comes from AIRA_BACKEND_URL, the only environment value the
// console needs to run.
func Default() *Config {
	baseURL := os.Getenv("AIRA_BACKEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	return &Config{
		Server:  ServerConfig{HTTPAddr: "127.0.0.1:8090"},
		Backend: BackendConfig{BaseURL: baseURL, AudioPath: "/audio", Timeout: 10 * time.Second},
		Monitor: MonitorConfig{PollInterval: 5 * time.Second, PageSize: 20},
		Simulator: SimulatorConfig{
			SessionTTL:  30 * time.Minute,
			MaxSessions: 64,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Parse duration fields
	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config file at path when it exists and falls back
// to Default() when path is empty or missing, so AIRA_BACKEND_URL alone is
// enough to run the console.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validating config: %w", err)
		}
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validating config: %w", err)
		}
		return cfg, nil
	}
	return Load(path)
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	// The console listen address is required unless Tailscale serves instead
	if !c.Tailscale.Enabled && c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required (or enable tailscale)")
	}

	// Tailscale requires a hostname
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}

	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required (or set AIRA_BACKEND_URL)")
	}
	parsed, err := url.Parse(c.Backend.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("backend.base_url %q must be an absolute URL", c.Backend.BaseURL)
	}

	if c.Monitor.PollInterval < time.Second {
		return fmt.Errorf("monitor.poll_interval must be at least 1s, got %s", c.Monitor.PollInterval)
	}
	if c.Monitor.PageSize < 1 || c.Monitor.PageSize > 100 {
		return fmt.Errorf("monitor.page_size must be between 1 and 100, got %d", c.Monitor.PageSize)
	}

	if c.Simulator.MaxSessions < 1 {
		return fmt.Errorf("simulator.max_sessions must be positive, got %d", c.Simulator.MaxSessions)
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Backend.TimeoutRaw != "" {
		cfg.Backend.Timeout, err = time.ParseDuration(cfg.Backend.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing backend.timeout %q: %w", cfg.Backend.TimeoutRaw, err)
		}
	}

	if cfg.Monitor.PollIntervalRaw != "" {
		cfg.Monitor.PollInterval, err = time.ParseDuration(cfg.Monitor.PollIntervalRaw)
		if err != nil {
			return fmt.Errorf("parsing monitor.poll_interval %q: %w", cfg.Monitor.PollIntervalRaw, err)
		}
	}

	if cfg.Simulator.SessionTTLRaw != "" {
		cfg.Simulator.SessionTTL, err = time.ParseDuration(cfg.Simulator.SessionTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing simulator.session_ttl %q: %w", cfg.Simulator.SessionTTLRaw, err)
		}
	}

	return nil
}
