package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmynk/biblioteca/internal/config"
	"github.com/mmynk/biblioteca/internal/server"
	"github.com/mmynk/biblioteca/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.SetupWithLevel(cfg.LogLevel)
	if cfg.InsecureSecret() {
		logger.Warn("JWT_SECRET not set, using the development secret")
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to start", "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
