package repository

import (
	"time"

	"github.com/okian/facultyhub/pkg/logger"
)

// Supported drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultSQLitePath     = "faculty.db"
	defaultConnectRetries = 3
	defaultRetryDelay     = time.Second
	defaultConnectTimeout = 5 * time.Second
)

type settings struct {
	dsn            string
	sqlitePath     string
	seedFile       string
	maxConns       int32
	connectRetries int
	retryDelay     time.Duration
	connectTimeout time.Duration
	log            logger.Logger
}

func newSettings(opts []Option) settings {
	s := settings{
		sqlitePath:     defaultSQLitePath,
		connectRetries: defaultConnectRetries,
		retryDelay:     defaultRetryDelay,
		connectTimeout: defaultConnectTimeout,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option applies a configuration option to Open and the store constructors.
type Option func(*settings)

// WithDSN sets the Postgres connection string.
func WithDSN(dsn string) Option {
	return func(s *settings) {
		s.dsn = dsn
	}
}

// WithSQLitePath sets the SQLite database file. ":memory:" keeps it in memory.
func WithSQLitePath(path string) Option {
	return func(s *settings) {
		if path != "" {
			s.sqlitePath = path
		}
	}
}

// WithSeedFile loads a YAML fixture into an empty store.
func WithSeedFile(path string) Option {
	return func(s *settings) {
		s.seedFile = path
	}
}

// WithMaxConns caps the Postgres pool size.
func WithMaxConns(n int32) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxConns = n
		}
	}
}

// WithConnectRetry sets how many times to try connecting and the initial
// backoff delay, which doubles after every failed attempt.
func WithConnectRetry(attempts int, delay time.Duration) Option {
	return func(s *settings) {
		if attempts > 0 {
			s.connectRetries = attempts
		}
		if delay > 0 {
			s.retryDelay = delay
		}
	}
}

// WithConnectTimeout bounds a single connection attempt.
func WithConnectTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.connectTimeout = d
		}
	}
}

// WithLogger sets the logger used for connection progress.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		s.log = l
	}
}
