package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cinemaclient/internal/flagx"
)

// parseFlags populates cfg from the short flags listed in the package doc.
// Unknown arguments are filtered out first so -c/-config do not trip the
// parser. It panics on malformed values or a non-positive page size.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-e", "-d", "-p", "-t", "-i", "-l", "-L", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.GraphQLEndpoint, "e", cfg.GraphQLEndpoint, "GraphQL gateway endpoint")
	fs.StringVar(&cfg.StateDBPath, "d", cfg.StateDBPath, "local state database path")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "list page size")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Locale, "L", cfg.Locale, "collation locale (BCP 47)")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address, empty to disable")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if cfg.PageSize <= 0 {
		panic(fmt.Sprintf("page size must be positive, got %d", cfg.PageSize))
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
}
