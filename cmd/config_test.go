package cmd_test

import (
	"testing"
	"time"

	"footprint/cmd"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_PORT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "DB_HOST", "DB_PORT", "DB_SSLMODE",
		"REDIS_URL", "RABBITMQ_URL", "TZ", "HOLIDAYS", "LABEL_LOCALE", "CUTOFF_HOUR",
		"BULK_RATE_LIMIT_PER_MINUTE", "STALLED_ORDERS_SCHEDULE", "STALLED_AFTER_BUSINESS_DAYS",
	} {
		t.Setenv(key, "")
	}

	cfg := cmd.LoadConfig()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "Asia/Jerusalem", cfg.Timezone)
	assert.Empty(t, cfg.Holidays)
	assert.Equal(t, 14, cfg.CutoffHour)
	assert.Equal(t, 10, cfg.BulkRateLimitPerMinute)
	assert.Equal(t, "0 0 * * * *", cfg.StalledOrdersSchedule)
	assert.Equal(t, 2, cfg.StalledAfterBusinessDays)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("HOLIDAYS", "2026-09-12, 2026-09-13,,2026-09-21")
	t.Setenv("BULK_RATE_LIMIT_PER_MINUTE", "25")
	t.Setenv("CUTOFF_HOUR", "not-a-number")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")

	cfg := cmd.LoadConfig()

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"2026-09-12", "2026-09-13", "2026-09-21"}, cfg.Holidays)
	assert.Equal(t, 25, cfg.BulkRateLimitPerMinute)
	assert.Equal(t, 14, cfg.CutoffHour, "unparsable values fall back to the default")
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
}

func TestConfig_DSN(t *testing.T) {
	cfg := cmd.Config{
		DBHost: "db", DBPort: "5433", DBUser: "fp", DBPassword: "secret", DBName: "orders", DBSslMode: "require",
	}

	assert.Equal(t, "host=db port=5433 user=fp password=secret dbname=orders sslmode=require", cfg.DSN())
}
