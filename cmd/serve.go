package cmd

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grimm.is/spagen/internal/api"
	"grimm.is/spagen/internal/brand"
	"grimm.is/spagen/internal/metrics"
)

// RunServe starts the HTTP API and blocks until SIGINT or SIGTERM.
func RunServe(args []string) error {
	lf := &logFlags{}
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	listen := fs.String("listen", brand.DefaultListen, "HTTP address to listen on")
	fs.StringVar(listen, "l", brand.DefaultListen, "HTTP address to listen on (short)")
	maxBody := fs.Int64("max-body", api.DefaultServerConfig().MaxBodyBytes, "Maximum request body in bytes")
	interval := fs.Duration("metrics-interval", 15*time.Second, "Uptime gauge refresh interval")
	fs.StringVar(&lf.level, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&lf.json, "log-json", false, "Write logs as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := lf.setup("api")
	if err != nil {
		return err
	}

	cfg := api.DefaultServerConfig()
	cfg.MaxBodyBytes = *maxBody

	server := api.NewServer(api.ServerOptions{
		Config:    cfg,
		Logger:    logger,
		Collector: metrics.NewCollector(logger.WithComponent("metrics"), *interval),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx, *listen)
}
