package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/cinemaclient/internal/flagx"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" apart from zero values.
type JsonConfig struct {
	GraphQLEndpoint            *string `json:"graphql_endpoint"`
	StateDBPath                *string `json:"state_db_path"`
	PageSize                   *int    `json:"page_size"`
	RequestTimeoutSeconds      *int    `json:"request_timeout_seconds"`
	OnlineCheckIntervalSeconds *int    `json:"online_check_interval_seconds"`
	LogLevel                   *string `json:"log_level"`
	Locale                     *string `json:"locale"`
	MetricsAddr                *string `json:"metrics_addr"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// It panics on read or decode errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.GraphQLEndpoint != nil {
		cfg.GraphQLEndpoint = *jc.GraphQLEndpoint
	}
	if jc.StateDBPath != nil {
		cfg.StateDBPath = *jc.StateDBPath
	}
	if jc.PageSize != nil {
		cfg.PageSize = *jc.PageSize
	}
	if jc.RequestTimeoutSeconds != nil {
		cfg.RequestTimeout = time.Duration(*jc.RequestTimeoutSeconds) * time.Second
	}
	if jc.OnlineCheckIntervalSeconds != nil {
		cfg.OnlineCheckInterval = time.Duration(*jc.OnlineCheckIntervalSeconds) * time.Second
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.Locale != nil {
		cfg.Locale = *jc.Locale
	}
	if jc.MetricsAddr != nil {
		cfg.MetricsAddr = *jc.MetricsAddr
	}
}
