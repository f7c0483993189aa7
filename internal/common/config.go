package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Extraction ExtractionConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path          string
	MigrationsDir string
	BusyTimeout   time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr      string
	MaxUploadSize int64
	UploadDir     string
}

// ExtractionConfig holds extraction-engine configuration
type ExtractionConfig struct {
	// TemplatesPath points at an optional JSON file of extra builder
	// template definitions merged into the builtin registry at startup.
	TemplatesPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:          getEnv("DB_PATH", "./data/xtracr.db"),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "./db/migrations"),
			BusyTimeout:   getEnvAsDuration("DB_BUSY_TIMEOUT", 5*time.Second),
		},
		Server: ServerConfig{
			HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
			MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 16<<20),
			UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		},
		Extraction: ExtractionConfig{
			TemplatesPath: getEnv("TEMPLATES_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return NewAppError("CONFIG_ERROR", "DB_PATH is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Server.MaxUploadSize <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_UPLOAD_SIZE must be positive", ErrInvalidInput)
	}
	return nil
}
