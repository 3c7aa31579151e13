// Package config reads application settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the settings shared by every command.
type Config struct {
	DBPath      string
	ExportDir   string
	LogMode     string
	LogLevel    string
	LogHashIDs  bool
	Addr        string
	CORSOrigins []string
}

// Load reads configuration from environment variables. Callers that want
// .env support load it first.
func Load() (*Config, error) {
	dbPath := os.Getenv("MARGA_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".marga", "marga.db")
	}

	cfg := &Config{
		DBPath:      dbPath,
		ExportDir:   getEnv("MARGA_EXPORT_DIR", "."),
		LogMode:     getEnv("MARGA_LOG_MODE", "development"),
		LogLevel:    getEnv("MARGA_LOG_LEVEL", "info"),
		LogHashIDs:  getEnvBool("MARGA_LOG_HASH_IDS", false),
		Addr:        getEnv("MARGA_ADDR", ":8080"),
		CORSOrigins: splitList(getEnv("MARGA_CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("MARGA_DB cannot be empty")
	}
	if c.ExportDir == "" {
		return fmt.Errorf("MARGA_EXPORT_DIR cannot be empty")
	}
	if c.Addr == "" {
		return fmt.Errorf("MARGA_ADDR cannot be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("MARGA_LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// getEnv treats a blank value the same as an unset one.
func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
