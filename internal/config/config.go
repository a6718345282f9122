package config

import (
	"os"
	"strconv"
	"time"

	"github.com/raoelg/ttest-to-bayesfactor/internal"
	"github.com/raoelg/ttest-to-bayesfactor/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Numerics NumericsConfig
	Batch    BatchConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds the calculation ledger connection. An empty URL
// disables the ledger.
type DatabaseConfig struct {
	URL         string
	AutoMigrate bool
}

// Enabled reports whether a ledger database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// NumericsConfig holds the tolerances of the adaptive quadrature
type NumericsConfig struct {
	RelTolerance    float64
	AbsTolerance    float64
	MaxSubdivisions int
}

// BatchConfig holds batch evaluation settings
type BatchConfig struct {
	Concurrency int
	MaxRows     int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	logConfig, err := loadLogConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load log configuration")
	}
	config.Log = *logConfig

	config.Server = *loadServerConfig()
	config.Database = *loadDatabaseConfig()
	config.Numerics = *loadNumericsConfig()
	config.Batch = *loadBatchConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		ReadTimeout:     getEnvDurationOrDefault("READ_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:         getEnvOrDefault("DATABASE_URL", ""),
		AutoMigrate: getEnvBoolOrDefault("DB_AUTO_MIGRATE", true),
	}
}

func loadLogConfig() (*LogConfig, error) {
	raw := getEnvOrDefault("LOG_LEVEL", "info")
	level, ok := internal.ParseLogLevel(raw)
	if !ok {
		return nil, errors.ConfigInvalid("unknown LOG_LEVEL " + strconv.Quote(raw))
	}
	return &LogConfig{Level: level}, nil
}

func loadNumericsConfig() *NumericsConfig {
	return &NumericsConfig{
		RelTolerance:    getEnvFloatOrDefault("QUAD_REL_TOL", 1e-8),
		AbsTolerance:    getEnvFloatOrDefault("QUAD_ABS_TOL", 0),
		MaxSubdivisions: getEnvIntOrDefault("QUAD_MAX_SUBDIVISIONS", 500),
	}
}

func loadBatchConfig() *BatchConfig {
	return &BatchConfig{
		Concurrency: getEnvIntOrDefault("BATCH_CONCURRENCY", 4),
		MaxRows:     getEnvIntOrDefault("BATCH_MAX_ROWS", 10000),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if !(config.Numerics.RelTolerance > 0) && !(config.Numerics.AbsTolerance > 0) {
		return errors.ConfigInvalid("at least one quadrature tolerance must be positive")
	}
	if config.Numerics.RelTolerance < 0 || config.Numerics.AbsTolerance < 0 {
		return errors.ConfigInvalid("quadrature tolerances must not be negative")
	}
	if config.Numerics.MaxSubdivisions < 1 {
		return errors.ConfigInvalid("QUAD_MAX_SUBDIVISIONS must be at least 1")
	}
	if config.Batch.Concurrency < 1 {
		return errors.ConfigInvalid("BATCH_CONCURRENCY must be at least 1")
	}
	if config.Batch.MaxRows < 1 {
		return errors.ConfigInvalid("BATCH_MAX_ROWS must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
