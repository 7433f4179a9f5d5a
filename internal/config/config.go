package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Panel    PanelConfig
	Catalog  CatalogConfig
	CORS     CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds the DSN of the session row cache. The default is an
// in-memory database; nothing outlives the process.
type DatabaseConfig struct {
	DSN string
}

// PanelConfig points at the panel backend API this service consumes.
type PanelConfig struct {
	BaseURL string
	Token   string
}

// CatalogConfig controls the provider/station catalog cache.
type CatalogConfig struct {
	TTL         time.Duration
	RefreshSpec string // cron spec for the periodic refresh
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	catalogTTL, err := time.ParseDuration(getEnv("CATALOG_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_TTL: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DB_DSN", "file:verifica_session?mode=memory&cache=shared"),
		},
		Panel: PanelConfig{
			BaseURL: getEnv("PANEL_BASE_URL", "http://localhost:8000"),
			Token:   getEnv("PANEL_API_TOKEN", ""),
		},
		Catalog: CatalogConfig{
			TTL:         catalogTTL,
			RefreshSpec: getEnv("CATALOG_REFRESH_SPEC", "@every 15m"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
