package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/okian/facultyhub/pkg/logger"
)

// ConnectPostgres opens a pgx pool with retries and wraps it for sqlx. The
// schema is expected to exist already.
func ConnectPostgres(ctx context.Context, opts ...Option) (*SQLStore, error) {
	cfg := newSettings(opts)
	if cfg.dsn == "" {
		return nil, ErrMissingDSN
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.maxConns > 0 {
		poolCfg.MaxConns = cfg.maxConns
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.connectTimeout

	pool, err := connectWithRetry(ctx, poolCfg, cfg)
	if err != nil {
		return nil, err
	}

	db := sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx")
	return &SQLStore{
		db:           db,
		driver:       DriverPostgres,
		storageOrder: "article_id",
		closeFn:      pool.Close,
	}, nil
}

// connectWithRetry retries with exponential backoff: delay, 2*delay, 4*delay...
func connectWithRetry(ctx context.Context, poolCfg *pgxpool.Config, cfg settings) (*pgxpool.Pool, error) {
	var lastErr error
	for attempt := 1; attempt <= cfg.connectRetries; attempt++ {
		logInfo(ctx, cfg.log, "connecting to postgres",
			logger.Int("attempt", attempt), logger.Int("max_attempts", cfg.connectRetries))

		connectCtx, cancel := context.WithTimeout(ctx, cfg.connectTimeout)
		pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
		if err == nil {
			err = pool.Ping(connectCtx)
			if err != nil {
				pool.Close()
			}
		}
		cancel()

		if err == nil {
			logInfo(ctx, cfg.log, "connected to postgres", logger.Int("attempt", attempt))
			return pool, nil
		}
		lastErr = err

		if attempt == cfg.connectRetries {
			break
		}
		delay := cfg.retryDelay * time.Duration(1<<uint(attempt-1))
		logInfo(ctx, cfg.log, "postgres connection failed, retrying",
			logger.Error(err), logger.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("connect postgres: %w", ctx.Err())
		}
	}
	return nil, fmt.Errorf("connect postgres after %d attempts: %w", cfg.connectRetries, lastErr)
}

func logInfo(ctx context.Context, l logger.Logger, msg string, fields ...logger.Field) {
	if l != nil {
		l.Info(ctx, msg, fields...)
	}
}
