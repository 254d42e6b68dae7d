// Package config handles configuration for the reveal CLI,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the reveal CLI.
//
// Fields:
//   - ServerBaseURL: origin of the card server's HTTP API.
//   - RequestTimeout: per-request timeout for API calls.
//   - CardID: the card to reveal.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	CardID         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
