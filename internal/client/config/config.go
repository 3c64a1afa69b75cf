package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the cinema client.
type Config struct {
	GraphQLEndpoint     string
	StateDBPath         string
	PageSize            int
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
	// Locale is a BCP 47 tag used to collate text sorts.
	Locale string
	// MetricsAddr, when set, serves Prometheus metrics on /metrics.
	MetricsAddr string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GraphQLEndpoint = "http://localhost:4000/graphql"
	c.StateDBPath = "cinema.db"
	c.PageSize = 12
	c.RequestTimeout = 0
	c.OnlineCheckInterval = 5 * time.Second
	c.LogLevel = "info"
	c.Locale = "en"
	c.MetricsAddr = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
