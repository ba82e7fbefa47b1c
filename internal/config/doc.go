// Package config handles configuration loading for aira-console.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable
// expansion. A missing config file falls back to defaults, so setting
// AIRA_BACKEND_URL is the only required input.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from the -config flag
//  2. Path from AIRA_CONSOLE_CONFIG environment variable
//  3. ./config.yaml (current directory)
//  4. ~/.config/aira/console.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	backend:
//	  base_url: "${AIRA_BACKEND_URL}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Console listen address:
//
//	server:
//	  http_addr: "127.0.0.1:8090"
//
// Backend selection:
//
//	backend:
//	  base_url: "${AIRA_BACKEND_URL}"
//	  timeout: "10s"
//	  audio_path: "/audio"
//
// Live monitor polling:
//
//	monitor:
//	  poll_interval: "5s"
//	  page_size: 20
//
// Simulator session bounds:
//
//	simulator:
//	  session_ttl: "30m"
//	  max_sessions: 64
//
// Tailscale:
//
//	tailscale:
//	  enabled: false
//	  hostname: "aira-console"
//	  auth_key: "${TS_AUTHKEY}"
//	  funnel: false
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// Mock fallback gate:
//
//	dev_mode: false
package config
