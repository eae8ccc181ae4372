package config

import (
	"os"
	"strconv"

	"pravaah/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Paths    PathConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	MaxConn int
}

// RedisConfig holds the optional cache/fanout settings. Redis is
// optional: without it the latest-readings cache and the alert channel
// are simply skipped.
type RedisConfig struct {
	URL          string
	AlertChannel string
	Enabled      bool
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// PathConfig holds file system paths
type PathConfig struct {
	ArtifactsDir  string
	ThresholdFile string
	PolicyFile    string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			MaxConn: getEnvIntOrDefault("DB_MAX_CONN", 10),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			AlertChannel: getEnvOrDefault("ALERT_CHANNEL", "pravaah:alerts"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8503"),
		},
		Paths: PathConfig{
			ArtifactsDir:  getEnvOrDefault("ARTIFACTS_DIR", "./artifacts"),
			ThresholdFile: getEnvOrDefault("THRESHOLDS_FILE", "./configs/thresholds.yaml"),
			PolicyFile:    getEnvOrDefault("POLICY_FILE", "./configs/roles.yaml"),
		},
	}
	config.Redis.Enabled = config.Redis.URL != ""

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Paths.ArtifactsDir == "" {
		return errors.ConfigInvalid("artifacts directory is required")
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
