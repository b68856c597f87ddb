// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application.
type Config struct {
	// AWS
	AWSRegion string
	S3Bucket  string

	// Database
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// Extraction
	GeminiAPIKey string
	GeminiModel  string

	// Routing
	UnderwritersFile string
	RoutingTopN      int

	// Scheduling
	ScheduleBufferMinutes int
	ScheduleTimezone      string

	// Application
	Stage    string
	LogLevel string
	Port     int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		// AWS
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:  getEnv("S3_BUCKET", "submission-routing-dev"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBName:     getEnv("DB_NAME", "submission_routing"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),

		// Extraction
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		// Routing
		UnderwritersFile: getEnv("UNDERWRITERS_FILE", ""),
		RoutingTopN:      getEnvInt("ROUTING_TOP_N", 3),

		// Scheduling
		ScheduleBufferMinutes: getEnvInt("SCHEDULE_BUFFER_MINUTES", 30),
		ScheduleTimezone:      getEnv("SCHEDULE_TIMEZONE", "UTC"),

		// Application
		Stage:    getEnv("STAGE", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvInt("PORT", 8080),
	}

	if cfg.RoutingTopN < 1 {
		return nil, fmt.Errorf("ROUTING_TOP_N must be at least 1, got %d", cfg.RoutingTopN)
	}
	if cfg.ScheduleBufferMinutes < 0 {
		return nil, fmt.Errorf("SCHEDULE_BUFFER_MINUTES must not be negative, got %d", cfg.ScheduleBufferMinutes)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	sslMode := "require" // Use SSL for RDS
	if c.DBHost == "localhost" || c.DBHost == "127.0.0.1" {
		sslMode = "disable"
	}
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + strconv.Itoa(c.DBPort) + "/" + c.DBName + "?sslmode=" + sslMode
}

// ScheduleBuffer is the delay added after a client availability time.
func (c *Config) ScheduleBuffer() time.Duration {
	return time.Duration(c.ScheduleBufferMinutes) * time.Minute
}

// Location resolves ScheduleTimezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ScheduleTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_TIMEZONE %q: %w", c.ScheduleTimezone, err)
	}
	return loc, nil
}

// DatabaseConfigured reports whether a database password or non-local host
// has been provided.
func (c *Config) DatabaseConfigured() bool {
	return c.DBPassword != "" || (c.DBHost != "localhost" && c.DBHost != "127.0.0.1")
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
