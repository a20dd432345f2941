package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the identity service
type Config struct {
	// Server
	Port     string
	Host     string
	LogLevel string

	// Database
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseSSLMode  string

	// Firebase
	FirebaseProjectID       string
	FirebaseCredentialsFile string

	// Auth cookie
	TokenCookieName   string
	TokenCookieMaxAge time.Duration
	SecureCookies     bool

	// CORS
	CORSAllowedOrigins []string

	// Features
	EnableRateLimit bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", "8080")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Database configuration. The service starts without a reachable
	// database (the user store is then flagged unavailable), but the
	// connection parameters themselves are required.
	config.DatabaseHost = getEnvOrDefault("DB_HOST", "identity-postgres")
	config.DatabasePort = getEnvOrDefault("DB_PORT", "5432")
	config.DatabaseName = getEnvOrDefault("DB_NAME", "identity_db")
	config.DatabaseUser = getEnvOrDefault("DB_USER", "identity_user")
	config.DatabasePassword = os.Getenv("DB_PASSWORD")
	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", "require")

	// Firebase configuration. The project ID is required; the credentials
	// file is optional (application default credentials are used when it
	// is unset).
	config.FirebaseProjectID = os.Getenv("FIREBASE_PROJECT_ID")
	if config.FirebaseProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}
	config.FirebaseCredentialsFile = os.Getenv("FIREBASE_CREDENTIALS_FILE")

	// Auth cookie configuration
	config.TokenCookieName = getEnvOrDefault("TOKEN_COOKIE_NAME", "firebase_token")
	cookieMaxAgeStr := getEnvOrDefault("TOKEN_COOKIE_MAX_AGE", "1h")
	var err error
	config.TokenCookieMaxAge, err = time.ParseDuration(cookieMaxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_COOKIE_MAX_AGE: %w", err)
	}
	config.SecureCookies = getBoolEnv("SECURE_COOKIES", true)

	// CORS configuration
	originsStr := getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5000")
	for _, origin := range strings.Split(originsStr, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			config.CORSAllowedOrigins = append(config.CORSAllowedOrigins, origin)
		}
	}

	// Feature flags
	config.EnableRateLimit = getBoolEnv("ENABLE_RATE_LIMIT", true)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// DatabaseURL builds the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.TokenCookieName == "" {
		return fmt.Errorf("token cookie name must not be empty")
	}

	if c.TokenCookieMaxAge < time.Minute {
		return fmt.Errorf("token cookie max age must be at least 1 minute, got: %v", c.TokenCookieMaxAge)
	}

	if len(c.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("at least one CORS allowed origin is required")
	}

	return nil
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
