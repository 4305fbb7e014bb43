// Package config loads runtime configuration for the dashboard client.
//
// Sources & precedence:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
package config

import (
	"time"

	"github.com/inboxpilot/dashboard-client/internal/store"
)

// Config holds runtime settings for the dashboard client.
type Config struct {
	// GatewayBaseURL is the identity backend, e.g. "https://api.inboxpilot.com".
	GatewayBaseURL string
	// RequestTimeout bounds each HTTP attempt against the gateway.
	RequestTimeout time.Duration
	// StoreBackend selects the session store implementation.
	StoreBackend store.Backend
	// StorePath is the session store file (ignored by the memory backend).
	StorePath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GatewayBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.StoreBackend = store.BackendSQLite
	c.StorePath = "session.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
