// Package config reads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/mmynk/biblioteca/internal/query"
	"github.com/mmynk/biblioteca/pkg/logging"
)

// Config holds the server settings.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string
	// Addr is the listen address of the HTTP server.
	Addr string
	// JWTSecret signs session tokens.
	JWTSecret string
	// TokenTTL is how long an issued token stays valid.
	TokenTTL time.Duration
	// LogLevel is the minimum level logged.
	LogLevel slog.Level
	// PageSize is the default listing page size.
	PageSize int
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

const devSecret = "dev-secret-change-me"

// Defaults returns the settings used when nothing is set.
func Defaults() Config {
	return Config{
		DBPath:          "./data/biblioteca.db",
		Addr:            ":8080",
		JWTSecret:       devSecret,
		TokenTTL:        24 * time.Hour,
		LogLevel:        slog.LevelInfo,
		PageSize:        query.DefaultPageSize,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the configuration through lookup, which has the
// signature of os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults()
	var errs []error

	if v, ok := lookup("DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := lookup("ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("JWT_SECRET"); ok && v != "" {
		cfg.JWTSecret = v
	}
	if v, ok := lookup("TOKEN_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("TOKEN_TTL: invalid duration %q", v))
		} else {
			cfg.TokenTTL = d
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		level, err := logging.ParseLevel(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
		} else {
			cfg.LogLevel = level
		}
	}
	if v, ok := lookup("PAGE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > query.MaxPageSize {
			errs = append(errs, fmt.Errorf("PAGE_SIZE: invalid size %q", v))
		} else {
			cfg.PageSize = n
		}
	}
	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: invalid duration %q", v))
		} else {
			cfg.ShutdownTimeout = d
		}
	}

	return cfg, errors.Join(errs...)
}

// InsecureSecret reports whether the built-in development secret is in use.
func (c Config) InsecureSecret() bool {
	return c.JWTSecret == devSecret
}
