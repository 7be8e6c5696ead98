package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Media    MediaConfig
	Logger   LoggerConfig
	Auth     AuthConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Addr      string
	PublicDir string // static frontend directory, empty disables serving it
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string
}

// MediaConfig holds the upload directory location.
type MediaConfig struct {
	UploadDir string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds the admin authentication secret. The value may be either
// a plaintext password or a bcrypt hash.
type AuthConfig struct {
	AdminPassword string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:      getEnv("KATALOG_ADDR", ":8080"),
			PublicDir: getEnv("KATALOG_PUBLIC_DIR", ""),
		},
		Database: DatabaseConfig{
			Path: getEnv("KATALOG_DB", "data/items.sqlite3"),
		},
		Media: MediaConfig{
			UploadDir: getEnv("KATALOG_UPLOAD_DIR", "uploads"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Auth: AuthConfig{
			AdminPassword: getEnv("KATALOG_ADMIN_PASSWORD", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server address is required")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Media.UploadDir == "" {
		return fmt.Errorf("upload directory is required")
	}

	if c.Auth.AdminPassword == "" {
		return fmt.Errorf("admin password is required (set KATALOG_ADMIN_PASSWORD)")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
