package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	CORS     CORSConfig     `toml:"cors"`
	Logging  LoggingConfig  `toml:"logging"`
	Snapshot SnapshotConfig `toml:"snapshot"`
	Display  DisplayConfig  `toml:"display"`
	Auth     AuthConfig     `toml:"auth"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `toml:"port"`
	Host string `toml:"host"`
	Addr string `toml:"-"` // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path         string `toml:"path"`
	SeedDefaults bool   `toml:"seed_defaults"` // Insert the example investments into an empty ledger
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // zerolog level name
	Format string `toml:"format"` // "human" or "json"
}

// SnapshotConfig holds the daily snapshot job configuration
type SnapshotConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // cron spec
}

// DisplayConfig holds presentation settings for exports and charts
type DisplayConfig struct {
	Currency       string `toml:"currency"` // ISO 4217 code used for formatting only
	ExportFilename string `toml:"export_filename"`
}

// AuthConfig holds the key protecting destructive endpoints
type AuthConfig struct {
	InternalAPIKey string `toml:"-"` // Only read from the environment
}

// NewDefaultConfig returns the configuration used when nothing is overridden.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5001",
			Host: "localhost",
		},
		Database: DatabaseConfig{
			Path: "./data/investment_tracker.db",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
				"http://localhost",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Snapshot: SnapshotConfig{
			Enabled:  true,
			Schedule: "@daily",
		},
		Display: DisplayConfig{
			Currency:       "INR",
			ExportFilename: "mycapital360_portfolio.csv",
		},
	}
}

// Load reads configuration from defaults, an optional TOML file, the .env file
// and environment variables, in that order of increasing precedence.
//
// The TOML file path is taken from CONFIG_FILE (default ./config.toml); a missing
// file is skipped.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := NewDefaultConfig()

	path := getEnv("CONFIG_FILE", "./config.toml")
	if err := loadFile(config, path); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// loadFile merges the TOML file at path into config.
func loadFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func applyEnvOverrides(config *Config) error {
	config.Server.Port = getEnv("SERVER_PORT", config.Server.Port)
	config.Server.Host = getEnv("SERVER_HOST", config.Server.Host)
	config.Database.Path = getEnv("DB_PATH", config.Database.Path)
	config.Logging.Level = getEnv("LOG_LEVEL", config.Logging.Level)
	config.Logging.Format = getEnv("LOG_FORMAT", config.Logging.Format)
	config.Snapshot.Schedule = getEnv("SNAPSHOT_SCHEDULE", config.Snapshot.Schedule)
	config.Display.Currency = getEnv("DISPLAY_CURRENCY", config.Display.Currency)
	config.Display.ExportFilename = getEnv("EXPORT_FILENAME", config.Display.ExportFilename)
	config.Auth.InternalAPIKey = os.Getenv("INTERNAL_API_KEY")

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		config.CORS.AllowedOrigins = splitList(origins)
	}

	var err error
	if config.Snapshot.Enabled, err = getEnvBool("SNAPSHOT_ENABLED", config.Snapshot.Enabled); err != nil {
		return err
	}
	if config.Database.SeedDefaults, err = getEnvBool("SEED_DEFAULTS", config.Database.SeedDefaults); err != nil {
		return err
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
