// Package app wires the application together. Everything is
// constructor-injected through the container; no package holds global
// state.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	billingApp "github.com/halcyonapp/halcyon/internal/billing/application"
	"github.com/halcyonapp/halcyon/internal/deeplink"
	identityDomain "github.com/halcyonapp/halcyon/internal/identity/domain"
	"github.com/halcyonapp/halcyon/internal/identity/infrastructure/provider"
	"github.com/halcyonapp/halcyon/internal/referral"
	"github.com/halcyonapp/halcyon/internal/session/store"
	"github.com/halcyonapp/halcyon/internal/shared/infrastructure/eventbus"
	"github.com/halcyonapp/halcyon/internal/storage"
	"github.com/halcyonapp/halcyon/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	Gateway  storage.Gateway
	Records  *storage.Records
	Provider identityDomain.Provider

	EventPublisher eventbus.Publisher

	Store     *store.Store
	Lifecycle *billingApp.LifecycleService
	DeepLinks *deeplink.Router
	Referrals *referral.Client
}

// NewContainer builds and initializes the dependency graph. nav receives
// dispatched deep-link routes; pass nil to log them instead.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, nav deeplink.Navigator) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	gateway, err := newGateway(ctx, cfg)
	if err != nil {
		return nil, err
	}
	records := storage.NewRecords(gateway)

	device := identityDomain.DeviceMetadata{
		DeviceID:   cfg.DeviceID,
		Platform:   runtime.GOOS,
		AppVersion: cfg.AppVersion,
	}

	identityProvider, err := newProvider(cfg, device, logger)
	if err != nil {
		_ = gateway.Close()
		return nil, err
	}

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		_ = gateway.Close()
		return nil, err
	}

	sessionStore := store.NewStore(identityProvider, records, publisher, logger)
	if err := sessionStore.Initialize(ctx); err != nil {
		_ = publisher.Close()
		_ = gateway.Close()
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	lifecycle := billingApp.NewLifecycleService(sessionStore, nil, logger)

	if nav == nil {
		nav = &logNavigator{logger: logger}
	}
	parser := deeplink.NewParser(cfg.DeepLinkScheme, cfg.DeepLinkDomains)
	router := deeplink.NewRouter(parser, gateway, sessionStore, nav, logger)

	referrals := referral.NewClient(
		sessionStore,
		identityProvider,
		newReferralBackend(cfg, logger),
		gateway,
		cfg.AppVersion,
		logger,
	)

	logger.Info("container initialized",
		"storage_driver", cfg.StorageDriver,
		"event_publisher", cfg.EventPublisher,
	)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Gateway:        gateway,
		Records:        records,
		Provider:       identityProvider,
		EventPublisher: publisher,
		Store:          sessionStore,
		Lifecycle:      lifecycle,
		DeepLinks:      router,
		Referrals:      referrals,
	}, nil
}

// Close releases all held connections.
func (c *Container) Close() {
	c.Store.Close()

	if err := c.EventPublisher.Close(); err != nil {
		c.Logger.Warn("error closing event publisher", "error", err)
	}
	if err := c.Gateway.Close(); err != nil {
		c.Logger.Warn("error closing storage gateway", "error", err)
	}

	c.Logger.Info("container closed")
}

func newGateway(ctx context.Context, cfg *config.Config) (storage.Gateway, error) {
	switch cfg.StorageDriver {
	case "sqlite":
		return storage.NewSQLiteGateway(ctx, cfg.SQLitePath)
	case "postgres":
		return storage.NewPostgresGateway(ctx, cfg.DatabaseURL)
	case "redis":
		return storage.NewRedisGateway(ctx, cfg.RedisURL)
	case "memory":
		return storage.NewMemoryGateway(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func newProvider(cfg *config.Config, device identityDomain.DeviceMetadata, logger *slog.Logger) (identityDomain.Provider, error) {
	if cfg.IdentityBaseURL == "" {
		logger.Info("no identity backend configured, using local provider")
		return provider.NewLocalProvider(device), nil
	}
	return provider.NewHTTPProvider(provider.HTTPProviderConfig{
		BaseURL:      cfg.IdentityBaseURL,
		ClientID:     cfg.IdentityClientID,
		ClientSecret: cfg.IdentitySecret,
		TokenURL:     cfg.IdentityTokenURL,
		Device:       device,
	}, logger)
}

func newPublisher(cfg *config.Config, logger *slog.Logger) (eventbus.Publisher, error) {
	switch cfg.EventPublisher {
	case "rabbitmq":
		return eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	case "noop":
		return eventbus.NewNoopPublisher(logger), nil
	case "inprocess":
		return eventbus.NewInProcessBus(logger), nil
	}
	return nil, fmt.Errorf("unknown event publisher %q", cfg.EventPublisher)
}

func newReferralBackend(cfg *config.Config, logger *slog.Logger) referral.Backend {
	if cfg.ReferralAPIURL == "" {
		logger.Info("no referral backend configured, using local backend")
		return referral.NewLocalBackend()
	}
	return referral.NewHTTPBackend(referral.BackendConfig{
		BaseURL:        cfg.ReferralAPIURL,
		BreakerEnabled: cfg.ReferralBreakerEnabled,
		BreakerTrips:   cfg.ReferralBreakerTrips,
		BreakerTimeout: cfg.ReferralBreakerTimeout,
	}, logger)
}

// logNavigator is the fallback navigator; it only logs dispatches.
type logNavigator struct {
	logger *slog.Logger
}

func (n *logNavigator) Navigate(ctx context.Context, route deeplink.Route) {
	n.logger.Info("navigate", "route", route.Name())
}
