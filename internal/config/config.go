// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5001".
	Addr string `koanf:"addr"`

	// StoreDriver selects the record store: memory, sqlite or postgres.
	StoreDriver string `koanf:"store_driver"`

	// DatabaseURL is the Postgres connection string.
	DatabaseURL string `koanf:"database_url"`

	// SQLitePath is the SQLite database file.
	SQLitePath string `koanf:"sqlite_path"`

	// SeedFile is a YAML fixture loaded into an empty store.
	SeedFile string `koanf:"seed_file"`

	// DefaultPageSize and MaxPageSize bound directory pages.
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	// CORSAllowOrigin is sent as Access-Control-Allow-Origin. Empty disables CORS.
	CORSAllowOrigin string `koanf:"cors_allow_origin"`

	// DBMaxConns caps the Postgres pool. Zero keeps the pgx default.
	DBMaxConns int `koanf:"db_max_conns"`

	// DBConnectRetries and DBRetryDelayMS control the Postgres startup retry.
	DBConnectRetries int `koanf:"db_connect_retries"`
	DBRetryDelayMS   int `koanf:"db_retry_delay_ms"`

	// DBConnectTimeoutMS bounds a single Postgres connection attempt.
	DBConnectTimeoutMS int `koanf:"db_connect_timeout_ms"`

	// ShutdownTimeoutMS bounds graceful HTTP shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":5001",
		StoreDriver:        "memory",
		SQLitePath:         "faculty.db",
		DefaultPageSize:    24,
		MaxPageSize:        200,
		CORSAllowOrigin:    "*",
		DBConnectRetries:   3,
		DBRetryDelayMS:     1000,
		DBConnectTimeoutMS: 5000,
		ShutdownTimeoutMS:  5000,
	}
}

// RetryDelay returns DBRetryDelayMS as a duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.DBRetryDelayMS) * time.Millisecond
}

// ConnectTimeout returns DBConnectTimeoutMS as a duration.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.DBConnectTimeoutMS) * time.Millisecond
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}

// Validate checks field ranges and cross-field requirements.
func (c *Config) Validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	err := validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.LogLevel, validation.In("", "debug", "info", "warn", "warning", "error")),
		validation.Field(&c.LogFormat, validation.In("", "text", "json")),
		validation.Field(&c.StoreDriver, validation.Required, validation.In("memory", "sqlite", "postgres")),
		validation.Field(&c.DatabaseURL, validation.When(c.StoreDriver == "postgres", validation.Required)),
		validation.Field(&c.SQLitePath, validation.When(c.StoreDriver == "sqlite", validation.Required)),
		validation.Field(&c.DefaultPageSize, validation.Min(1)),
		validation.Field(&c.MaxPageSize, validation.Min(1)),
		validation.Field(&c.DBMaxConns, validation.Min(0)),
		validation.Field(&c.DBConnectRetries, validation.Min(0)),
		validation.Field(&c.DBRetryDelayMS, validation.Min(0)),
		validation.Field(&c.DBConnectTimeoutMS, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("%w: default_page_size %d exceeds max_page_size %d", ErrInvalidConfig, c.DefaultPageSize, c.MaxPageSize)
	}
	return nil
}
