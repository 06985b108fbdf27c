package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Search  SearchConfig
	LLM     LLMConfig
	Store   StoreConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	GinMode        string
	APIKey         string
	AllowedOrigins string
	NLQRatePerMin  int
}

// CatalogConfig holds upstream catalog configuration
type CatalogConfig struct {
	URL          string
	APIKey       string
	CacheSeconds int
	TimeoutSecs  int
}

// SearchConfig holds result-limit configuration
type SearchConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// LLMConfig holds completion-provider configuration
type LLMConfig struct {
	Provider string // "openai" or "mock"
	APIKey   string
	APIBase  string
	Model    string
}

// StoreConfig selects the interaction-store backend
type StoreConfig struct {
	Driver string // "memory" or "postgres"
	DSN    string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			GinMode:        getEnv("GIN_MODE", "release"),
			APIKey:         getEnv("BACK_API_KEY", "demo-key"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NLQRatePerMin:  getEnvAsInt("NLQ_RATE_PER_MIN", 30),
		},
		Catalog: CatalogConfig{
			URL:          getEnv("CATALOG_URL", "https://test.controldepropiedades.com/api/propiedades/miraiz"),
			APIKey:       getEnv("CATALOG_API_KEY", ""),
			CacheSeconds: getEnvAsInt("CACHE_SECONDS", 90),
			TimeoutSecs:  getEnvAsInt("CATALOG_TIMEOUT_SECONDS", 5),
		},
		Search: SearchConfig{
			DefaultLimit: getEnvAsInt("SEARCH_DEFAULT_LIMIT", 10),
			MaxLimit:     getEnvAsInt("SEARCH_MAX_LIMIT", 100),
		},
		LLM: LLMConfig{
			Provider: getEnv("LLM_PROVIDER", "mock"),
			APIKey:   getEnv("LLM_API_KEY", getEnv("OPENAI_API_KEY", "")),
			APIBase:  getEnv("LLM_API_BASE", "https://api.openai.com/v1"),
			Model:    getEnv("LLM_MODEL", "gpt-4o-mini"),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", "memory"),
			DSN:    getEnv("DATABASE_URL", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

// NewLogger builds a logrus logger from the logging configuration.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if c.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logrus.Warnf("invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}
