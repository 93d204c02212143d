package config

import (
	"os"
	"strconv"
	"time"

	"vokzal/internal/database"
	"vokzal/internal/messaging"
	"vokzal/internal/search"
)

// Config holds the full application configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// Booking lifecycle
	BookingTTL time.Duration

	// Batch job loop intervals (cmd/jobs -loop mode)
	SweepInterval    time.Duration
	GenerateInterval time.Duration

	Database      database.Config
	NATS          messaging.Config
	Elasticsearch search.Config
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8082"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		BookingTTL: time.Duration(getEnvInt("BOOKING_TTL_MIN", 60)) * time.Minute,

		SweepInterval:    time.Duration(getEnvInt("SWEEP_INTERVAL_SEC", 300)) * time.Second,
		GenerateInterval: time.Duration(getEnvInt("GENERATE_INTERVAL_SEC", 86400)) * time.Second,

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "vokzal"),
			Password:           getEnv("DB_PASSWORD", "vokzal123"),
			DBName:             getEnv("DB_NAME", "vokzal"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "vokzal"),
			ClientID:  getEnv("NATS_CLIENT_ID", "vokzal-api"),
			Enabled:   getEnv("NATS_ENABLED", "false") == "true",
		},

		Elasticsearch: search.Config{
			URL:        getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
			Username:   getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:   getEnv("ELASTICSEARCH_PASSWORD", ""),
			Index:      getEnv("ELASTICSEARCH_INDEX", "trips"),
			MaxRetries: getEnvInt("ELASTICSEARCH_MAX_RETRIES", 3),
			Enabled:    getEnv("ELASTICSEARCH_ENABLED", "false") == "true",
		},
	}
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable value or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
