package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv     string
	LogLevel   string
	AppVersion string
	DeviceID   string

	// Storage
	StorageDriver string
	SQLitePath    string
	DatabaseURL   string
	RedisURL      string

	// RabbitMQ
	RabbitMQURL    string
	EventPublisher string

	// Identity provider
	IdentityBaseURL  string
	IdentityClientID string
	IdentitySecret   string
	IdentityTokenURL string

	// Referral backend
	ReferralAPIURL         string
	ReferralBreakerEnabled bool
	ReferralBreakerTrips   uint32
	ReferralBreakerTimeout time.Duration

	// Deep links
	DeepLinkScheme  string
	DeepLinkDomains []string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		AppVersion: getEnv("HALCYON_APP_VERSION", "dev"),
		DeviceID:   getEnv("HALCYON_DEVICE_ID", ""),

		StorageDriver: getEnv("STORAGE_DRIVER", "sqlite"),
		SQLitePath:    getEnv("SQLITE_PATH", getDefaultSQLitePath()),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),

		RabbitMQURL:    getEnv("RABBITMQ_URL", ""),
		EventPublisher: getEnv("EVENT_PUBLISHER", "inprocess"),

		IdentityBaseURL:  getEnv("IDENTITY_BASE_URL", ""),
		IdentityClientID: getEnv("IDENTITY_CLIENT_ID", ""),
		IdentitySecret:   getEnv("IDENTITY_CLIENT_SECRET", ""),
		IdentityTokenURL: getEnv("IDENTITY_TOKEN_URL", ""),

		ReferralAPIURL:         getEnv("REFERRAL_API_URL", ""),
		ReferralBreakerEnabled: getBoolEnv("REFERRAL_BREAKER_ENABLED", true),
		ReferralBreakerTrips:   uint32(getIntEnv("REFERRAL_BREAKER_TRIPS", 5)),
		ReferralBreakerTimeout: getDurationEnv("REFERRAL_BREAKER_TIMEOUT", 30*time.Second),

		DeepLinkScheme:  getEnv("DEEPLINK_SCHEME", "halcyon"),
		DeepLinkDomains: getListEnv("DEEPLINK_DOMAINS", []string{"halcyon.app", "www.halcyon.app"}),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

func getDefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".halcyon/halcyon.db"
	}
	return home + "/.halcyon/halcyon.db"
}
