package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvVars clears all Halcyon-related environment variables.
func clearEnvVars() {
	envVars := []string{
		"APP_ENV", "LOG_LEVEL", "HALCYON_APP_VERSION", "HALCYON_DEVICE_ID",
		"STORAGE_DRIVER", "SQLITE_PATH", "DATABASE_URL", "REDIS_URL",
		"RABBITMQ_URL", "EVENT_PUBLISHER",
		"IDENTITY_BASE_URL", "IDENTITY_CLIENT_ID", "IDENTITY_CLIENT_SECRET",
		"IDENTITY_TOKEN_URL",
		"REFERRAL_API_URL", "REFERRAL_BREAKER_ENABLED", "REFERRAL_BREAKER_TRIPS",
		"REFERRAL_BREAKER_TIMEOUT",
		"DEEPLINK_SCHEME", "DEEPLINK_DOMAINS",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "dev", cfg.AppVersion)

	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Contains(t, cfg.SQLitePath, ".halcyon/halcyon.db")

	assert.Equal(t, "inprocess", cfg.EventPublisher)

	assert.True(t, cfg.ReferralBreakerEnabled)
	assert.Equal(t, uint32(5), cfg.ReferralBreakerTrips)
	assert.Equal(t, 30*time.Second, cfg.ReferralBreakerTimeout)

	assert.Equal(t, "halcyon", cfg.DeepLinkScheme)
	assert.Equal(t, []string{"halcyon.app", "www.halcyon.app"}, cfg.DeepLinkDomains)
}

func TestLoad_WithCustomEnvVars(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("STORAGE_DRIVER", "redis")
	os.Setenv("REDIS_URL", "redis://localhost:6379/2")
	os.Setenv("REFERRAL_BREAKER_TIMEOUT", "1m")
	os.Setenv("REFERRAL_BREAKER_TRIPS", "3")
	os.Setenv("DEEPLINK_SCHEME", "myapp")
	os.Setenv("DEEPLINK_DOMAINS", "myapp.io, links.myapp.io")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis", cfg.StorageDriver)
	assert.Equal(t, "redis://localhost:6379/2", cfg.RedisURL)
	assert.Equal(t, time.Minute, cfg.ReferralBreakerTimeout)
	assert.Equal(t, uint32(3), cfg.ReferralBreakerTrips)
	assert.Equal(t, "myapp", cfg.DeepLinkScheme)
	assert.Equal(t, []string{"myapp.io", "links.myapp.io"}, cfg.DeepLinkDomains)
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		appEnv   string
		expected bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"test", false},
	}

	for _, tt := range tests {
		t.Run(tt.appEnv, func(t *testing.T) {
			cfg := &Config{AppEnv: tt.appEnv}
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		appEnv   string
		expected bool
	}{
		{"development", false},
		{"production", true},
		{"staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.appEnv, func(t *testing.T) {
			cfg := &Config{AppEnv: tt.appEnv}
			assert.Equal(t, tt.expected, cfg.IsProduction())
		})
	}
}

func TestGetEnv(t *testing.T) {
	value := getEnv("NON_EXISTENT_VAR", "default")
	assert.Equal(t, "default", value)

	os.Setenv("TEST_VAR", "custom")
	defer os.Unsetenv("TEST_VAR")
	value = getEnv("TEST_VAR", "default")
	assert.Equal(t, "custom", value)

	os.Setenv("TEST_EMPTY", "")
	defer os.Unsetenv("TEST_EMPTY")
	value = getEnv("TEST_EMPTY", "default")
	assert.Equal(t, "default", value)
}

func TestGetIntEnv(t *testing.T) {
	value := getIntEnv("NON_EXISTENT_INT", 42)
	assert.Equal(t, 42, value)

	os.Setenv("TEST_INT", "100")
	defer os.Unsetenv("TEST_INT")
	value = getIntEnv("TEST_INT", 42)
	assert.Equal(t, 100, value)

	os.Setenv("TEST_INVALID_INT", "not-a-number")
	defer os.Unsetenv("TEST_INVALID_INT")
	value = getIntEnv("TEST_INVALID_INT", 42)
	assert.Equal(t, 42, value)
}

func TestGetDurationEnv(t *testing.T) {
	value := getDurationEnv("NON_EXISTENT_DUR", 5*time.Second)
	assert.Equal(t, 5*time.Second, value)

	os.Setenv("TEST_DUR", "10m")
	defer os.Unsetenv("TEST_DUR")
	value = getDurationEnv("TEST_DUR", 5*time.Second)
	assert.Equal(t, 10*time.Minute, value)

	os.Setenv("TEST_INVALID_DUR", "not-a-duration")
	defer os.Unsetenv("TEST_INVALID_DUR")
	value = getDurationEnv("TEST_INVALID_DUR", 5*time.Second)
	assert.Equal(t, 5*time.Second, value)
}

func TestGetBoolEnv(t *testing.T) {
	value := getBoolEnv("NON_EXISTENT_BOOL", true)
	assert.True(t, value)

	trueValues := []string{"true", "1", "True", "TRUE"}
	for _, tv := range trueValues {
		os.Setenv("TEST_BOOL", tv)
		value = getBoolEnv("TEST_BOOL", false)
		assert.True(t, value, "Expected true for value: %s", tv)
	}

	falseValues := []string{"false", "0", "False", "FALSE"}
	for _, fv := range falseValues {
		os.Setenv("TEST_BOOL", fv)
		value = getBoolEnv("TEST_BOOL", true)
		assert.False(t, value, "Expected false for value: %s", fv)
	}
	os.Unsetenv("TEST_BOOL")
}

func TestGetListEnv(t *testing.T) {
	value := getListEnv("NON_EXISTENT_LIST", []string{"fallback"})
	assert.Equal(t, []string{"fallback"}, value)

	os.Setenv("TEST_LIST", "a, b ,c")
	defer os.Unsetenv("TEST_LIST")
	value = getListEnv("TEST_LIST", nil)
	assert.Equal(t, []string{"a", "b", "c"}, value)

	os.Setenv("TEST_LIST_BLANK", " , ,")
	defer os.Unsetenv("TEST_LIST_BLANK")
	value = getListEnv("TEST_LIST_BLANK", []string{"fallback"})
	assert.Equal(t, []string{"fallback"}, value)
}

func TestGetDefaultSQLitePath(t *testing.T) {
	path := getDefaultSQLitePath()
	assert.Contains(t, path, ".halcyon/halcyon.db")
}
