package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/halcyonapp/halcyon/adapter/cli"
	cliAuth "github.com/halcyonapp/halcyon/adapter/cli/auth"
	cliLink "github.com/halcyonapp/halcyon/adapter/cli/link"
	cliReferral "github.com/halcyonapp/halcyon/adapter/cli/referral"
	cliSubscription "github.com/halcyonapp/halcyon/adapter/cli/subscription"
	"github.com/halcyonapp/halcyon/internal/app"
	"github.com/halcyonapp/halcyon/pkg/config"
	"github.com/halcyonapp/halcyon/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development", StorageDriver: "memory", EventPublisher: "inprocess"}
	}

	logCfg := observability.DefaultLogConfig()
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	logCfg.ServiceVersion = cfg.AppVersion
	logger := observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger, nil)
	if err != nil {
		if cfg.IsDevelopment() {
			// In development, fall back to the in-memory stack
			logger.Warn("failed to initialize container, falling back to memory storage", "error", err)
			cfg.StorageDriver = "memory"
			cfg.EventPublisher = "inprocess"
			container, err = app.NewContainer(ctx, cfg, logger, nil)
		}
		if err != nil {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	}
	defer container.Close()

	cli.SetApp(cli.NewApp(
		container.Store,
		container.Lifecycle,
		container.Referrals,
		container.DeepLinks,
	))

	// Register commands
	cli.AddCommand(cliAuth.Cmd)
	cli.AddCommand(cliSubscription.Cmd)
	cli.AddCommand(cliReferral.Cmd)
	cli.AddCommand(cliLink.Cmd)

	// Execute CLI
	cli.Execute()
}
