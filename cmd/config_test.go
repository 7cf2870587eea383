package cmd_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bakery/cmd"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "STORAGE_BACKEND", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"DB_SSLMODE", "RABBITMQ_URL", "RABBITMQ_EXCHANGE", "LOG_LEVEL", "PROMOTION_MIN_COMPLETED_ORDERS",
	"JUNIOR_BAKER_MAX_ACTIVE_ORDERS", "UNCLAIMED_ORDER_AFTER", "MESSAGE_RETENTION", "RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST", "RATE_LIMIT_IDLE", "BOOTSTRAP_ADMIN_EMAIL", "BOOTSTRAP_ADMIN_PASSWORD",
}

// clearEnv blanks every key so that values from the host do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.StorageMemory, cfg.StorageBackend)
	assert.Equal(t, "bakery.events", cfg.RabbitMQExchange)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 5, cfg.PromotionMinCompletedOrders)
	assert.Equal(t, 0, cfg.JuniorBakerMaxActiveOrders)
	assert.Equal(t, 30*time.Minute, cfg.UnclaimedOrderAfter)
	assert.Equal(t, 720*time.Hour, cfg.MessageRetention)
	assert.InDelta(t, 20.0, cfg.RateLimitRPS, 0.001)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Equal(t, 10*time.Minute, cfg.RateLimitIdle)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PROMOTION_MIN_COMPLETED_ORDERS", "3")
	t.Setenv("JUNIOR_BAKER_MAX_ACTIVE_ORDERS", "2")
	t.Setenv("UNCLAIMED_ORDER_AFTER", "10m")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "root@bakery.test")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "change-me-now")

	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, cmd.StoragePostgres, cfg.StorageBackend)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 3, cfg.PromotionMinCompletedOrders)
	assert.Equal(t, 2, cfg.JuniorBakerMaxActiveOrders)
	assert.Equal(t, 10*time.Minute, cfg.UnclaimedOrderAfter)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=bakery sslmode=disable", cfg.DSN())
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that already exist.
	for _, key := range []string{"HTTP_PORT", "MESSAGE_RETENTION"} {
		require.NoError(t, os.Unsetenv(key))
	}

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("HTTP_PORT=9090\nMESSAGE_RETENTION=24h\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("HTTP_PORT")
		_ = os.Unsetenv("MESSAGE_RETENTION")
	})

	cfg, err := cmd.LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.MessageRetention)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]struct {
		key, value string
	}{
		"unknown backend":       {"STORAGE_BACKEND", "mongo"},
		"malformed threshold":   {"PROMOTION_MIN_COMPLETED_ORDERS", "five"},
		"negative junior limit": {"JUNIOR_BAKER_MAX_ACTIVE_ORDERS", "-1"},
		"malformed duration":    {"UNCLAIMED_ORDER_AFTER", "soon"},
		"zero retention":        {"MESSAGE_RETENTION", "0s"},
		"malformed rate":        {"RATE_LIMIT_RPS", "fast"},
		"zero limiter idle":     {"RATE_LIMIT_IDLE", "0s"},
		"unknown level":         {"LOG_LEVEL", "loud"},
		"admin without secret":  {"BOOTSTRAP_ADMIN_EMAIL", "root@bakery.test"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
