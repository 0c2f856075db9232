// Package config loads runtime settings from environment variables, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application settings. It is read once at startup and treated as immutable.
type Config struct {
	// Server
	Port    string
	GinMode string

	// Database
	DatabasePath string

	// Logging
	LogLevel string

	// AllowSeedEndpoint exposes POST /api/init-data, which wipes all data
	AllowSeedEndpoint bool

	// CORSOrigins are the browser origins allowed to call the API; "*" allows any
	CORSOrigins []string
}

const (
	defaultPort         = "8080"
	defaultDatabasePath = "carz_auctions.db"
	defaultLogLevel     = "info"
	defaultCORSOrigin   = "*"
)

// Load reads the configuration from the environment. Values from envFile are
// applied first without overriding variables already set; a missing file is
// not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Port:         getEnv("PORT", defaultPort),
		GinMode:      getEnv("GIN_MODE", ""),
		DatabasePath: getEnv("DATABASE_PATH", defaultDatabasePath),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
	}

	var errs []string

	allowSeed, err := getBoolEnv("ALLOW_SEED_ENDPOINT", false)
	if err != nil {
		errs = append(errs, err.Error())
	}
	cfg.AllowSeedEndpoint = allowSeed

	cfg.CORSOrigins = parseOrigins(getEnv("CORS_ORIGIN", defaultCORSOrigin))
	if len(cfg.CORSOrigins) == 0 {
		errs = append(errs, "CORS_ORIGIN must list at least one origin")
	}

	if _, err := strconv.Atoi(strings.TrimPrefix(cfg.Port, ":")); err != nil {
		errs = append(errs, fmt.Sprintf("invalid PORT %q", cfg.Port))
	}
	if strings.TrimSpace(cfg.DatabasePath) == "" {
		errs = append(errs, "DATABASE_PATH must not be empty")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// Addr returns the listen address in the ":port" form gin expects
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s %q: must be a boolean", key, v)
	}
	return b, nil
}

// parseOrigins splits a comma-separated origin list, dropping blanks and trailing slashes
func parseOrigins(raw string) []string {
	var origins []string
	for _, p := range strings.Split(raw, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
