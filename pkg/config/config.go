// Package config provides configuration management for vegledger.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Config represents the application configuration.
type Config struct {
	Storage StorageConfig
	Auth    AuthConfig
	Debug   bool
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// StorageConfig represents where state and exports live.
type StorageConfig struct {
	Driver    string
	DataDir   string
	DBPath    string
	ExportDir string
}

// AuthConfig represents the user table and default credentials.
type AuthConfig struct {
	UsersFile string
	Username  string
	Password  string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	driver := strings.ToLower(getEnvOrDefault("VEGLEDGER_STORE", DriverSQLite))
	if driver != DriverSQLite && driver != DriverBolt {
		return nil, fmt.Errorf("invalid VEGLEDGER_STORE: %s (expected %s or %s)", driver, DriverSQLite, DriverBolt)
	}

	config := &Config{
		Storage: StorageConfig{
			Driver:    driver,
			DataDir:   getEnvOrDefault("VEGLEDGER_DATA_DIR", "./data"),
			DBPath:    os.Getenv("VEGLEDGER_DB_PATH"),
			ExportDir: os.Getenv("VEGLEDGER_EXPORT_DIR"),
		},
		Auth: AuthConfig{
			UsersFile: getEnvOrDefault("VEGLEDGER_USERS_FILE", "./config/users.yaml"),
			Username:  os.Getenv("VEGLEDGER_USER"),
			Password:  os.Getenv("VEGLEDGER_PASSWORD"),
		},
		Debug:    os.Getenv("DEBUG") == "true",
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "storage":
			switch path[1] {
			case "driver":
				value = c.Storage.Driver
			case "dataDir":
				value = c.Storage.DataDir
			case "dbPath":
				value = c.Storage.DBPath
			case "exportDir":
				value = c.Storage.ExportDir
			}
		case "auth":
			switch path[1] {
			case "usersFile":
				value = c.Auth.UsersFile
			case "username":
				value = c.Auth.Username
			case "password":
				value = c.Auth.Password
			}
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
