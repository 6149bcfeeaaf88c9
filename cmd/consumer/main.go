package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantledger/pnl-engine/app/consumer"
	"github.com/quantledger/pnl-engine/pkg/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	app, err := consumer.Init(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize consumers", "error", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go app.Run(ctx)

	<-quit

	slog.Info("Shutting down consumers...")
	cancel()
	if err := app.Shutdown(); err != nil {
		slog.Error("Shutdown error", "error", err)
	}

	slog.Info("Consumers stopped")
}
