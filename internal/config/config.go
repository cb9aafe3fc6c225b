// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process-wide configuration. It is loaded once at startup;
// there is no runtime reconfiguration.
type Config struct {
	Port      string
	StaticDir string
	LogDir    string
	DebugMode bool

	// Record store
	StoreDriver string // "postgres", "sqlite" or "memory"
	DatabaseURL string // postgres DSN
	SQLitePath  string

	// Operator credentials. AdminPasswordHash is a bcrypt hash; AdminPassword
	// is the plaintext dev fallback hashed at startup when no hash is set.
	AdminUsername     string
	AdminPasswordHash string
	AdminPassword     string

	// Session tokens
	AuthSecretKey string
	AuthTokenTTL  time.Duration
}

// Load reads configuration from the environment. A .env file is loaded first
// when present (optional).
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		StaticDir: getEnvPath("STATIC_DIR", "static"),
		LogDir:    getEnvPath("LOG_DIR", "logs"),
		DebugMode: getEnvBool("DEBUG_MODE", true),

		StoreDriver: getEnv("STORE_DRIVER", "sqlite"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "data/coachsite.db"),

		AdminUsername:     getEnv("ADMIN_USERNAME", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),

		AuthSecretKey: getEnv("AUTH_SECRET_KEY", ""),
		AuthTokenTTL:  getEnvDuration("AUTH_TOKEN_TTL", 24*time.Hour),
	}

	if cfg.StoreDriver == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("STORE_DRIVER=postgres requires DATABASE_URL")
	}

	if cfg.AdminUsername == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME is required")
	}
	if cfg.AdminPasswordHash == "" && cfg.AdminPassword == "" {
		return nil, fmt.Errorf("one of ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required")
	}

	return cfg, nil
}

// getEnv returns the environment variable or the default when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvPath returns a directory path from the environment, creating it when
// missing.
func getEnvPath(key, defaultValue string) string {
	path := getEnv(key, defaultValue)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			fmt.Printf("warning: failed to create directory %s: %v\n", path, err)
		}
	}

	return path
}

// getEnvBool returns a boolean environment variable.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value == "true" || value == "1" || value == "yes"
}

// getEnvDuration returns a duration environment variable ("24h", "30m", ...).
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		fmt.Printf("warning: invalid duration for %s: %v, using default\n", key, err)
		return defaultValue
	}
	return d
}
