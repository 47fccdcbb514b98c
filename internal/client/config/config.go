// Package config handles configuration for the CLI client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the scanfact CLI.
//
// Fields:
//   - ServerURL: base URL of the REST backend, no trailing slash.
//   - RequestTimeout: per-request deadline enforced by the adapter.
//   - CredentialDB: path of the local sqlite credential cache.
//   - PageSize: entities per page in list views.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	CredentialDB   string
	PageSize       int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.CredentialDB = "scanfact.db"
	c.PageSize = 6
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
