package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/okian/facultyhub/internal/domain/model"
)

// SQLStore implements Store over a relational database through sqlx. The
// same queries serve SQLite and Postgres.
type SQLStore struct {
	db     *sqlx.DB
	driver string
	// storageOrder orders research_articles rows as they were stored.
	storageOrder string
	closeFn      func()
}

// Driver implements Store.
func (s *SQLStore) Driver() string { return s.driver }

// DB exposes the underlying handle.
func (s *SQLStore) DB() *sqlx.DB { return s.db }

// Migrate creates the directory tables when they do not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Empty reports whether no professor is stored.
func (s *SQLStore) Empty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, countProfessors); err != nil {
		return false, fmt.Errorf("count professors: %w", err)
	}
	return n == 0, nil
}

// Seed inserts every record of f in one transaction.
func (s *SQLStore) Seed(ctx context.Context, f *Fixture) (err error) {
	if err := f.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	exec := func(query string, args ...any) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		return err
	}

	for _, r := range f.Universities {
		if err = exec(insertUniversity, r.ID, r.Name); err != nil {
			return fmt.Errorf("seed university %s: %w", r.ID, err)
		}
	}
	for _, r := range f.Colleges {
		if err = exec(insertCollege, r.ID, r.Name, nullable(r.UniversityID)); err != nil {
			return fmt.Errorf("seed college %s: %w", r.ID, err)
		}
	}
	for _, r := range f.Departments {
		if err = exec(insertDepartment, r.ID, r.Name, nullable(r.CollegeID)); err != nil {
			return fmt.Errorf("seed department %s: %w", r.ID, err)
		}
	}
	for _, r := range f.Fields {
		if err = exec(insertField, r.ID, r.Name, nullable(r.Description)); err != nil {
			return fmt.Errorf("seed field %s: %w", r.ID, err)
		}
	}
	for _, r := range f.DepartmentFields {
		if err = exec(insertMapping, r.DepartmentID, r.FieldID); err != nil {
			return fmt.Errorf("seed mapping %s/%s: %w", r.DepartmentID, r.FieldID, err)
		}
	}
	for _, r := range f.Professors {
		err = exec(insertProfessor, r.ID, r.Name,
			nullable(r.Position), nullable(r.Email), nullable(r.Phone),
			nullable(r.Headshot), nullable(r.ScholarURL), nullable(r.DepartmentID))
		if err != nil {
			return fmt.Errorf("seed professor %s: %w", r.ID, err)
		}
	}
	for _, r := range f.Articles {
		year := model.NewYear(r.Year).String()
		err = exec(insertArticle, r.ID, r.Title, nullable(r.ProfessorID), nullable(r.URL), nullable(year))
		if err != nil {
			return fmt.Errorf("seed article %s: %w", r.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// Professors implements Store.
func (s *SQLStore) Professors(ctx context.Context) ([]model.Professor, error) {
	return selectAll(ctx, s, "professors", professorRow.toModel, selectProfessors+" ORDER BY p.name")
}

// Professor implements Store.
func (s *SQLStore) Professor(ctx context.Context, id string) (model.Professor, error) {
	return selectOne(ctx, s, "professor", professorRow.toModel,
		selectProfessors+" WHERE CAST(p.professor_id AS TEXT) = ?", id)
}

// Publications implements Store.
func (s *SQLStore) Publications(ctx context.Context) ([]model.Publication, error) {
	return selectAll(ctx, s, "publications", publicationRow.toModel,
		selectPublications+" ORDER BY "+s.storageOrder)
}

// PublicationsByProfessor implements Store.
func (s *SQLStore) PublicationsByProfessor(ctx context.Context, professorID string) ([]model.Publication, error) {
	return selectAll(ctx, s, "publications_by_professor", publicationRow.toModel,
		selectPublications+" WHERE CAST(professor_id AS TEXT) = ? ORDER BY "+s.storageOrder, professorID)
}

// Publication implements Store.
func (s *SQLStore) Publication(ctx context.Context, id string) (model.Publication, error) {
	return selectOne(ctx, s, "publication", publicationRow.toModel,
		selectPublications+" WHERE CAST(article_id AS TEXT) = ?", id)
}

// Universities implements Store.
func (s *SQLStore) Universities(ctx context.Context) ([]model.University, error) {
	return selectAll(ctx, s, "universities", universityRow.toModel, selectUniversities+" ORDER BY name")
}

// University implements Store.
func (s *SQLStore) University(ctx context.Context, id string) (model.University, error) {
	return selectOne(ctx, s, "university", universityRow.toModel,
		selectUniversities+" WHERE CAST(university_id AS TEXT) = ?", id)
}

// Colleges implements Store.
func (s *SQLStore) Colleges(ctx context.Context) ([]model.College, error) {
	return selectAll(ctx, s, "colleges", collegeRow.toModel, selectColleges+" ORDER BY c.name")
}

// Departments implements Store.
func (s *SQLStore) Departments(ctx context.Context) ([]model.Department, error) {
	return selectAll(ctx, s, "departments", departmentRow.toModel, selectDepartments+" ORDER BY d.name")
}

// Department implements Store.
func (s *SQLStore) Department(ctx context.Context, id string) (model.Department, error) {
	return selectOne(ctx, s, "department", departmentRow.toModel,
		selectDepartments+" WHERE CAST(d.department_id AS TEXT) = ?", id)
}

// Fields implements Store.
func (s *SQLStore) Fields(ctx context.Context) ([]model.Field, error) {
	return selectAll(ctx, s, "fields", fieldRow.toModel, selectFields+" ORDER BY name")
}

// Field implements Store.
func (s *SQLStore) Field(ctx context.Context, id string) (model.Field, error) {
	return selectOne(ctx, s, "field", fieldRow.toModel,
		selectFields+" WHERE CAST(field_id AS TEXT) = ?", id)
}

// DepartmentFields implements Store.
func (s *SQLStore) DepartmentFields(ctx context.Context) ([]model.DepartmentField, error) {
	return selectAll(ctx, s, "department_fields", departmentFieldRow.toModel, selectDepartmentFields)
}

// Ping implements Store.
func (s *SQLStore) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.db.PingContext(ctx)
	observe(s.driver, "ping", start, err)
	if err != nil {
		return fmt.Errorf("ping %s: %w", s.driver, err)
	}
	return nil
}

// Close implements Store.
func (s *SQLStore) Close() error {
	err := s.db.Close()
	if s.closeFn != nil {
		s.closeFn()
	}
	return err
}

func selectAll[R, M any](ctx context.Context, s *SQLStore, op string, conv func(R) M, query string, args ...any) ([]M, error) {
	start := time.Now()
	var rows []R
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...)
	observe(s.driver, op, start, err)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", op, err)
	}

	out := make([]M, len(rows))
	for i, r := range rows {
		out[i] = conv(r)
	}
	return out, nil
}

func selectOne[R, M any](ctx context.Context, s *SQLStore, op string, conv func(R) M, query string, args ...any) (M, error) {
	start := time.Now()
	var (
		row  R
		zero M
	)
	err := s.db.GetContext(ctx, &row, s.db.Rebind(query+" LIMIT 1"), args...)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
	}
	observe(s.driver, op, start, err)
	switch {
	case errors.Is(err, ErrNotFound):
		return zero, err
	case err != nil:
		return zero, fmt.Errorf("query %s: %w", op, err)
	}
	return conv(row), nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
