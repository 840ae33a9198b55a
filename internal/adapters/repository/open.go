package repository

import (
	"context"
	"fmt"
	"strings"
)

// Open creates the Store for driver. A seed file, when set, fills the memory
// store and any empty SQL database.
func Open(ctx context.Context, driver string, opts ...Option) (Store, error) {
	cfg := newSettings(opts)

	var fixture *Fixture
	if cfg.seedFile != "" {
		f, err := LoadFixture(cfg.seedFile)
		if err != nil {
			return nil, err
		}
		fixture = f
	}

	switch strings.ToLower(driver) {
	case "", DriverMemory:
		return NewMemoryStore(fixture)
	case DriverSQLite:
		s, err := NewSQLiteStore(ctx, opts...)
		if err != nil {
			return nil, err
		}
		return seedIfEmpty(ctx, s, fixture)
	case DriverPostgres:
		s, err := ConnectPostgres(ctx, opts...)
		if err != nil {
			return nil, err
		}
		if fixture == nil {
			return s, nil
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return seedIfEmpty(ctx, s, fixture)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func seedIfEmpty(ctx context.Context, s *SQLStore, f *Fixture) (Store, error) {
	if f == nil {
		return s, nil
	}
	empty, err := s.Empty(ctx)
	if err == nil && empty {
		err = s.Seed(ctx, f)
	}
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
