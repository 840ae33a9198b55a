// Package repository provides read access to the faculty directory records.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/okian/facultyhub/internal/domain/model"
	"github.com/okian/facultyhub/pkg/metrics"
)

// Store is the read side of the directory database. Metrics are never
// stored; professors come back with zero Metrics.
type Store interface {
	// Professors returns every professor joined with department, college and
	// university names, ordered by name.
	Professors(ctx context.Context) ([]model.Professor, error)
	// Professor returns one professor or ErrNotFound.
	Professor(ctx context.Context, id string) (model.Professor, error)

	// Publications returns every publication row in storage order.
	Publications(ctx context.Context) ([]model.Publication, error)
	// PublicationsByProfessor returns the rows of one professor in storage order.
	PublicationsByProfessor(ctx context.Context, professorID string) ([]model.Publication, error)
	// Publication returns one publication or ErrNotFound.
	Publication(ctx context.Context, id string) (model.Publication, error)

	Universities(ctx context.Context) ([]model.University, error)
	University(ctx context.Context, id string) (model.University, error)
	Colleges(ctx context.Context) ([]model.College, error)
	Departments(ctx context.Context) ([]model.Department, error)
	Department(ctx context.Context, id string) (model.Department, error)
	Fields(ctx context.Context) ([]model.Field, error)
	Field(ctx context.Context, id string) (model.Field, error)
	// DepartmentFields returns the department to field mappings.
	DepartmentFields(ctx context.Context) ([]model.DepartmentField, error)

	// Driver names the backing implementation.
	Driver() string
	// Ping checks the store is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// observe records latency for a store call and counts failures other than
// ErrNotFound.
func observe(driver, op string, start time.Time, err error) {
	metrics.RecordStoreQuery(driver, op, float64(time.Since(start).Microseconds())/1000)
	if err != nil && !errors.Is(err, ErrNotFound) {
		metrics.RecordStoreError(driver, op)
	}
}
