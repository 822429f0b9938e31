package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	App       AppConfig
	Reporting ReportingConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL            string
	MigrateOnStart bool
	MigrationsPath string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

// ReportingConfig holds the runtime error reporting settings.
// Reporting is disabled when EndpointURL is empty.
type ReportingConfig struct {
	EndpointURL string
	BoardID     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MigrateOnStart: getEnvAsBool("MIGRATE_ON_START", false),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "warn"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Reporting: ReportingConfig{
			EndpointURL: getEnv("RUNTIME_ERROR_ENDPOINT_URL", ""),
			BoardID:     getEnv("BOARD_ID", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}
