package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/cinemaclient/internal/buildinfo"
	"github.com/dmitrijs2005/cinemaclient/internal/client/cli"
	"github.com/dmitrijs2005/cinemaclient/internal/client/config"
	"github.com/dmitrijs2005/cinemaclient/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	var reg *prometheus.Registry
	if cfg.MetricsAddr != "" {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		go func() {
			if err := cli.ServeMetrics(ctx, cfg.MetricsAddr, reg, logger); err != nil {
				logger.Error(ctx, "metrics endpoint stopped", "error", err)
			}
		}()
	}

	var registerer prometheus.Registerer
	if reg != nil {
		registerer = reg
	}

	app, err := cli.NewApp(ctx, cfg, logger, registerer)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error(context.Background(), "closing state database", "error", err)
		}
	}()

	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Info(ctx, "interrupted, exiting")
	}
}
