// Package config defines service configuration and its loading rules.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// CatalogPath is a local catalog file (.json, .yaml or .yml).
	CatalogPath string `koanf:"catalog_path"`

	// CatalogURL, when set, is fetched instead of reading CatalogPath.
	CatalogURL string `koanf:"catalog_url"`

	// CatalogReload re-reads CatalogPath on every request instead of
	// holding the catalog in memory.
	CatalogReload bool `koanf:"catalog_reload"`

	// FetchTimeoutMS bounds a single remote catalog fetch attempt.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// FetchRetries is how often a failed remote fetch is retried at startup.
	FetchRetries int `koanf:"fetch_retries"`
}

// New returns a Config populated with defaults. The context is reserved for
// sources that need it.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		CatalogPath:    "data/heroes.json",
		FetchTimeoutMS: 10_000,
		FetchRetries:   2,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
