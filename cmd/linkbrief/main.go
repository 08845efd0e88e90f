package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"LinkBrief/internal/app"
	"LinkBrief/internal/config"
	"LinkBrief/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("close application", "error", err)
		}
	}()

	if err := newCLI(application).RunContext(ctx, os.Args); err != nil {
		logger.Error("application stopped", "error", err)
		return 1
	}
	return 0
}
