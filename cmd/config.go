package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	ShutdownTimeout time.Duration
	LogLevel        string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Optional. Without it the bulk endpoint is limited per process.
	RedisURL string
	// Optional. Without it status events are dropped.
	RabbitMQURL string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Bucket          string
	R2Endpoint        string

	Timezone       string
	Holidays       []string
	LabelLocale    string
	CutoffHour     int
	ProductionDays int
	ShippingDays   int

	BulkRateLimitPerMinute int

	StalledOrdersSchedule    string
	StalledAfterBusinessDays int
}

// LoadConfig reads the environment, after loading .env when one is present.
func LoadConfig() Config {
	_ = godotenv.Load(".env")

	return Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "footprint"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "footprint"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:          getEnv("R2_BUCKET", ""),
		R2Endpoint:        getEnv("R2_ENDPOINT", ""),

		Timezone:       getEnv("TZ", "Asia/Jerusalem"),
		Holidays:       getListEnv("HOLIDAYS"),
		LabelLocale:    getEnv("LABEL_LOCALE", "he"),
		CutoffHour:     getIntEnv("CUTOFF_HOUR", 14),
		ProductionDays: getIntEnv("PRODUCTION_DAYS", 3),
		ShippingDays:   getIntEnv("SHIPPING_DAYS", 2),

		BulkRateLimitPerMinute: getIntEnv("BULK_RATE_LIMIT_PER_MINUTE", 10),

		StalledOrdersSchedule:    getEnv("STALLED_ORDERS_SCHEDULE", "0 0 * * * *"),
		StalledAfterBusinessDays: getIntEnv("STALLED_AFTER_BUSINESS_DAYS", 2),
	}
}

// DSN is the PostgreSQL connection string in key=value form.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
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

// getListEnv splits a comma separated value, dropping blanks.
func getListEnv(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
