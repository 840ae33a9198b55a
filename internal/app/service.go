// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	repository "github.com/okian/facultyhub/internal/adapters/repository"
	"github.com/okian/facultyhub/internal/domain/directory"
	"github.com/okian/facultyhub/internal/domain/model"
	"github.com/okian/facultyhub/internal/domain/productivity"
	"github.com/okian/facultyhub/internal/domain/ranking"
	"github.com/okian/facultyhub/pkg/logger"
	"github.com/okian/facultyhub/pkg/metrics"
)

const (
	defaultPageSize = 24
	defaultMaxPage  = 200
)

// Service answers directory queries. Every call reads fresh rows from the
// store and recomputes metrics; nothing derived is cached between calls.
type Service struct {
	mu sync.RWMutex

	store repository.Store
	calc  *productivity.Calculator
	now   func() time.Time

	defaultPageSize int
	maxPageSize     int

	// State
	started bool
	roster  rosterStats

	logger logger.Logger
}

// rosterStats describes the last roster computed.
type rosterStats struct {
	professors     int
	publications   int
	topResearchers int
	computedAt     time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source that decides the current year.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDefaultPageSize sets the page size used when a query has no limit.
func WithDefaultPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultPageSize = n
		}
	}
}

// WithMaxPageSize caps the page size a query may ask for.
func WithMaxPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPageSize = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		now:             time.Now,
		defaultPageSize: defaultPageSize,
		maxPageSize:     defaultMaxPage,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.defaultPageSize > s.maxPageSize {
		s.defaultPageSize = s.maxPageSize
	}
	s.calc = productivity.NewCalculator(productivity.WithClock(s.now))
	return s
}

// Start checks the store is reachable.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		return ErrNoStore
	}

	s.logger.Info(ctx, "starting directory service...", logger.String("store", s.store.Driver()))
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store unavailable: %w", err)
	}

	s.started = true
	s.logger.Info(ctx, "directory service started",
		logger.Int("defaultPageSize", s.defaultPageSize),
		logger.Int("maxPageSize", s.maxPageSize),
	)
	return nil
}

// Stop closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping directory service...")
	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing store failed", logger.Error(err))
	}

	s.started = false
	s.logger.Info(context.Background(), "directory service stopped")
}

// Ping checks the store.
func (s *Service) Ping(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	return s.store.Ping(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"defaultPageSize": s.defaultPageSize,
		"maxPageSize":     s.maxPageSize,
	}
	if s.store != nil {
		stats["store"] = s.store.Driver()
	}

	if !s.roster.computedAt.IsZero() {
		stats["professors"] = s.roster.professors
		stats["publications"] = s.roster.publications
		stats["topResearchers"] = s.roster.topResearchers
		stats["rosterComputedAt"] = s.roster.computedAt.UTC().Format(time.RFC3339)

		metrics.UpdateRosterSize(s.roster.professors, s.roster.publications, s.roster.topResearchers)
	}

	return stats
}

// loadRoster loads professors and publications and attaches fresh metrics.
func (s *Service) loadRoster(ctx context.Context) ([]model.Professor, []model.Publication, error) {
	if s.store == nil {
		return nil, nil, ErrNoStore
	}
	profs, err := s.store.Professors(ctx)
	if err != nil {
		return nil, nil, err
	}
	pubs, err := s.store.Publications(ctx)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	profs = s.calc.Attach(profs, pubs)
	metrics.RecordMetricComputationLatency(float64(time.Since(start).Microseconds()) / 1000)

	top := 0
	for _, p := range profs {
		if ranking.IsTopResearcher(p) {
			top++
		}
	}

	s.mu.Lock()
	s.roster = rosterStats{
		professors:     len(profs),
		publications:   len(pubs),
		topResearchers: top,
		computedAt:     s.now(),
	}
	s.mu.Unlock()
	metrics.UpdateRosterSize(len(profs), len(pubs), top)

	return profs, pubs, nil
}

// fieldLookup builds the department to field table for one request.
func (s *Service) fieldLookup(ctx context.Context) (*directory.FieldLookup, error) {
	mappings, err := s.store.DepartmentFields(ctx)
	if err != nil {
		return nil, err
	}
	return directory.NewFieldLookup(mappings), nil
}
