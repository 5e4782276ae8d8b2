package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable LoadConfig reads so the defaults apply.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_POOL_SIZE", "JWT_SECRET", "JWT_TOKEN_DURATION", "PORT", "LOG_LEVEL",
	}
	for _, key := range keys {
		if value, exists := os.LookupEnv(key); exists {
			t.Setenv(key, value) // restores on cleanup
			os.Unsetenv(key)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Errorf("database defaults = %s:%d, want localhost:5432", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.DBName != "periferia_social" {
		t.Errorf("DBName = %q, want periferia_social", cfg.Database.DBName)
	}
	if cfg.Auth.JWTSecret != DefaultJWTSecret {
		t.Errorf("JWTSecret = %q, want the development default", cfg.Auth.JWTSecret)
	}
	if !cfg.Auth.UsingDefaultSecret() {
		t.Error("UsingDefaultSecret() = false with no JWT_SECRET set")
	}
	if cfg.Auth.TokenDuration != time.Hour {
		t.Errorf("TokenDuration = %v, want 1h", cfg.Auth.TokenDuration)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("server port = %q, want 3000", cfg.Server.Port)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_POOL_SIZE", "25")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("JWT_TOKEN_DURATION", "30m")
	t.Setenv("PORT", "8080")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Errorf("database = %s:%d, want db.internal:5433", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.PoolSize != 25 {
		t.Errorf("PoolSize = %d, want 25", cfg.Database.PoolSize)
	}
	if cfg.Auth.UsingDefaultSecret() {
		t.Error("UsingDefaultSecret() = true with JWT_SECRET set")
	}
	if cfg.Auth.TokenDuration != 30*time.Minute {
		t.Errorf("TokenDuration = %v, want 30m", cfg.Auth.TokenDuration)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("server port = %q, want 8080", cfg.Server.Port)
	}
}

func TestLoadConfigCollectsErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("JWT_TOKEN_DURATION", "eventually")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("LoadConfig() returned nil error for invalid values")
	}
	if !strings.Contains(err.Error(), "DB_PORT") {
		t.Errorf("error does not mention DB_PORT: %v", err)
	}
	if !strings.Contains(err.Error(), "JWT_TOKEN_DURATION") {
		t.Errorf("error does not mention JWT_TOKEN_DURATION: %v", err)
	}
}

func TestLoadConfigRejectsZeroPool(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_POOL_SIZE", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig() accepted DB_POOL_SIZE=0")
	}
}
