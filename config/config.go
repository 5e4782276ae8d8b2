// Package config loads and validates application configuration from
// environment variables. Every variable has a default suitable only for local
// development; errors found while parsing are collected and reported together.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is the development fallback for JWT_SECRET. main logs a
// warning when it is in effect so a production misconfiguration is visible.
const DefaultJWTSecret = "super_secret_jwt_key"

// DatabaseConfig holds the settings for the PostgreSQL connection pool.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	PoolSize int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret     string        // secret key for signing JWTs
	TokenDuration time.Duration // lifetime of issued session tokens
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
}

// AppConfig is the top-level configuration for the application.
type AppConfig struct {
	Database *DatabaseConfig
	Auth     *AuthConfig
	Server   *ServerConfig
	LogLevel string
}

func getOptionalEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// LoadConfig reads the environment and returns the populated AppConfig.
// All parse errors are aggregated into a single error.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	dbConfig := &DatabaseConfig{
		Host:     getOptionalEnv("DB_HOST", "localhost"),
		Port:     getOptionalEnvInt("DB_PORT", 5432, &errs),
		User:     getOptionalEnv("DB_USER", "postgres"),
		Password: getOptionalEnv("DB_PASSWORD", "postgres"),
		DBName:   getOptionalEnv("DB_NAME", "periferia_social"),
		PoolSize: getOptionalEnvInt("DB_POOL_SIZE", 10, &errs),
	}
	if dbConfig.PoolSize < 1 {
		errs = append(errs, fmt.Sprintf("DB_POOL_SIZE must be at least 1, got %d", dbConfig.PoolSize))
	}

	authConfig := &AuthConfig{
		JWTSecret:     getOptionalEnv("JWT_SECRET", DefaultJWTSecret),
		TokenDuration: getOptionalEnvDuration("JWT_TOKEN_DURATION", time.Hour, &errs),
	}

	serverConfig := &ServerConfig{
		Port: getOptionalEnv("PORT", "3000"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		Database: dbConfig,
		Auth:     authConfig,
		Server:   serverConfig,
		LogLevel: getOptionalEnv("LOG_LEVEL", "info"),
	}, nil
}

// UsingDefaultSecret reports whether the signing secret is the development
// fallback rather than an operator-provided value.
func (c *AuthConfig) UsingDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}
