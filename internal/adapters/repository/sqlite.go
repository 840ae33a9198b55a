package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const sqlitePragmas = "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"

// NewSQLiteStore opens (creating if needed) a SQLite database and its
// schema. Use WithSQLitePath(":memory:") for a throwaway database.
func NewSQLiteStore(ctx context.Context, opts ...Option) (*SQLStore, error) {
	cfg := newSettings(opts)

	db, err := sqlx.Open("sqlite", cfg.sqlitePath+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	s := &SQLStore{db: db, driver: DriverSQLite, storageOrder: "rowid"}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}
