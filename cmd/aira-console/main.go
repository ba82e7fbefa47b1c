// ABOUTME: Entry point for the aira-console operator UI
// ABOUTME: Serves the console over HTTP or Tailscale against an external Aira backend

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/2389/aira-console/internal/aira"
	"github.com/2389/aira-console/internal/config"
	"github.com/2389/aira-console/internal/console"
	"github.com/2389/aira-console/internal/monitor"
	"github.com/2389/aira-console/internal/server"
	"github.com/2389/aira-console/internal/simulator"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
  __ _  _  _ __   __ _
 / _' |(_)| '__| / _' |
| (_| || || |   | (_| |
 \__,_||_||_|    \__,_|
`

// configFlag overrides the config search path when set.
var configFlag = flag.String("config", "", "path to the console config file")

// getConfigPath returns the path to the console config file.
// Priority: -config flag > AIRA_CONSOLE_CONFIG env var > XDG_CONFIG_HOME/aira/console.yaml > ~/.config/aira/console.yaml
func getConfigPath() string {
	if *configFlag != "" {
		return *configFlag
	}
	if envPath := os.Getenv("AIRA_CONSOLE_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "console.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "aira", "console.yaml")
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: aira-console [-config path] <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve           Start the operator console")
		fmt.Println("  init            Create a new config file interactively")
		fmt.Println("  health          Check console health")
		fmt.Println("  backend-health  Check the Aira backend health")
		fmt.Println("  version         Print the console version")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch flag.Arg(0) {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "health":
		err = runHealth(ctx)
	case "backend-health":
		err = runBackendHealth(ctx)
	case "version":
		fmt.Printf("aira-console %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", flag.Arg(0))
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	// Version info
	gray := color.New(color.FgHiBlack)
	gray.Printf("    operator console, version %s\n\n", version)

	// Load configuration. A missing file is fine; AIRA_BACKEND_URL plus
	// defaults is enough to run.
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		configPath = "(built-in defaults)"
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)

	// Startup info
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	if !cfg.Tailscale.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
	}
	green.Print("    ▶ ")
	fmt.Printf("Backend:   %s\n", cfg.Backend.BaseURL)

	// Tailscale status
	if cfg.Tailscale.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("Tailscale: ")
		cyan.Print(cfg.Tailscale.Hostname)
		if cfg.Tailscale.Funnel {
			yellow.Print(" [funnel]")
		} else if cfg.Tailscale.HTTPS {
			yellow.Print(" [https]")
		}
		if cfg.Tailscale.Ephemeral {
			gray.Print(" (ephemeral)")
		}
		fmt.Println()
	}

	if cfg.DevMode {
		yellow.Print("    ▶ ")
		fmt.Printf("Dev mode:  mock data for backend endpoints that 404\n")
	}

	fmt.Println()

	logger.Info("starting aira-console",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"backend", cfg.Backend.BaseURL,
		"dev_mode", cfg.DevMode,
	)

	// Wire up the backend client and console components
	backend, err := aira.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, cfg.DevMode, logger)
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}
	backend.SetAudioPath(cfg.Backend.AudioPath)

	mon := monitor.New(backend, cfg.Monitor.PollInterval, logger)
	sessions := simulator.NewHub(cfg.Simulator.SessionTTL, cfg.Simulator.MaxSessions, logger)

	con := console.New(console.Config{
		Backend:  backend,
		Monitor:  mon,
		Sessions: sessions,
		PageSize: cfg.Monitor.PageSize,
		Logger:   logger,
	})

	srv := server.New(server.Options{
		Config:  cfg,
		Console: con,
		Monitor: mon,
		Logger:  logger,
	})

	return srv.Run(ctx)
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	level, ok := logLevels[cfg.Level]
	if !ok {
		level = slog.LevelInfo
	}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(&colorHandler{level: level})
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu     sync.Mutex
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	line := color.HiBlackString(r.Time.Format("15:04:05")+" ") + levelTag(r.Level) + r.Message
	for _, a := range h.attrs {
		line += renderAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		line += renderAttr(a)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Println(line)
	return nil
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return color.New(color.FgRed, color.Bold).Sprint("ERR ")
	case l >= slog.LevelWarn:
		return color.YellowString("WRN ")
	case l >= slog.LevelInfo:
		return color.CyanString("INF ")
	default:
		return color.MagentaString("DBG ")
	}
}

func renderAttr(a slog.Attr) string {
	return color.HiBlackString(" "+a.Key+"=") + a.Value.String()
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &colorHandler{
		level:  h.level,
		attrs:  append(append([]slog.Attr{}, h.attrs...), attrs...),
		groups: h.groups,
	}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	return &colorHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: append(append([]string{}, h.groups...), name),
	}
}

func runHealth(ctx context.Context) error {
	cfg, err := config.LoadOrDefault(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+cfg.Server.HTTPAddr+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("building health request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("console unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("console at %s answered %d", cfg.Server.HTTPAddr, resp.StatusCode)
	}
	fmt.Println("healthy")
	return nil
}

// runBackendHealth asks the Aira backend for its health directly, bypassing
// the console. Useful to tell a dead console apart from a dead backend.
func runBackendHealth(ctx context.Context) error {
	cfg, err := config.LoadOrDefault(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	backend, err := aira.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, false, logger)
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}

	status, err := backend.Health(ctx)
	if err != nil {
		return fmt.Errorf("backend health check failed: %w", err)
	}

	if status.Timestamp.IsZero() {
		fmt.Println(status.Status)
	} else {
		fmt.Printf("%s (as of %s)\n", status.Status, status.Timestamp.Format(time.RFC3339))
	}
	return nil
}

func runInit() error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("aira-console configuration setup")
	fmt.Println("================================")
	fmt.Println()

	outputFile := prompt(reader, "Config file path", getConfigPath())
	if _, err := os.Stat(outputFile); err == nil {
		if !yes(prompt(reader, "File exists. Overwrite?", "no")) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	fmt.Println("\n--- Server Configuration ---")
	httpAddr := prompt(reader, "HTTP address", "127.0.0.1:8090")

	fmt.Println("\n--- Backend Configuration ---")
	backendURL := prompt(reader, "Aira backend base URL", "http://localhost:8000")
	backendTimeout := prompt(reader, "Backend request timeout", "10s")
	devMode := yes(prompt(reader, "Dev mode (mock data for missing endpoints)?", "no"))

	fmt.Println("\n--- Live Monitor Configuration ---")
	pollInterval := prompt(reader, "Poll interval", "5s")
	pageSize := prompt(reader, "Call list page size", "20")

	fmt.Println("\n--- Tailscale Configuration ---")
	tailscaleEnabled := yes(prompt(reader, "Enable Tailscale?", "no"))

	var tsHostname, tsAuthKey string
	var tsEphemeral, tsHTTPS, tsFunnel bool
	if tailscaleEnabled {
		tsHostname = prompt(reader, "Tailscale hostname", "aira-console")
		tsAuthKey = prompt(reader, "Tailscale auth key (leave empty for TS_AUTHKEY)", "")
		tsEphemeral = yes(prompt(reader, "Ephemeral node?", "no"))
		tsHTTPS = yes(prompt(reader, "Serve HTTPS with Tailscale certs?", "no"))
		tsFunnel = yes(prompt(reader, "Enable Funnel (public HTTPS)?", "no"))
	}

	fmt.Println("\n--- Logging Configuration ---")
	logLevel := prompt(reader, "Log level (debug/info/warn/error)", "info")
	logFormat := prompt(reader, "Log format (text/json)", "text")

	var sb strings.Builder
	sb.WriteString("# aira-console configuration\n# Generated by aira-console init\n\n")
	fmt.Fprintf(&sb, "server:\n  http_addr: %q\n\n", httpAddr)
	fmt.Fprintf(&sb, "backend:\n  base_url: %q\n  timeout: %q\n\n", backendURL, backendTimeout)
	fmt.Fprintf(&sb, "monitor:\n  poll_interval: %q\n  page_size: %s\n\n", pollInterval, pageSize)
	sb.WriteString("simulator:\n  session_ttl: \"30m\"\n  max_sessions: 64\n\n")
	fmt.Fprintf(&sb, "tailscale:\n  enabled: %t\n", tailscaleEnabled)
	if tailscaleEnabled {
		fmt.Fprintf(&sb, "  hostname: %q\n", tsHostname)
		if tsAuthKey != "" {
			fmt.Fprintf(&sb, "  auth_key: %q\n", tsAuthKey)
		}
		fmt.Fprintf(&sb, "  ephemeral: %t\n  https: %t\n  funnel: %t\n", tsEphemeral, tsHTTPS, tsFunnel)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "logging:\n  level: %q\n  format: %q\n\n", logLevel, logFormat)
	fmt.Fprintf(&sb, "dev_mode: %t\n", devMode)

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}

	fmt.Printf("\nWrote %s\n", outputFile)
	fmt.Println("\nStart the console with:")
	fmt.Println("  aira-console serve")
	return nil
}

// yes interprets an interactive answer.
func yes(answer string) bool {
	a := strings.ToLower(answer)
	return a == "yes" || a == "y"
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	label := question
	if defaultVal != "" {
		label += " [" + defaultVal + "]"
	}
	fmt.Print(label + ": ")

	input, err := reader.ReadString('\n')
	if err != nil {
		// EOF counts as accepting the default.
		fmt.Println()
		return defaultVal
	}
	if input = strings.TrimSpace(input); input == "" {
		return defaultVal
	}
	return input
}
