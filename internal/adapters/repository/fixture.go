package repository

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Fixture is a complete directory snapshot in YAML form. It seeds the
// memory store and the SQLite database.
type Fixture struct {
	Universities     []FixtureUniversity `yaml:"universities"`
	Colleges         []FixtureCollege    `yaml:"colleges"`
	Departments      []FixtureDepartment `yaml:"departments"`
	Fields           []FixtureField      `yaml:"fields"`
	DepartmentFields []FixtureMapping    `yaml:"department_fields"`
	Professors       []FixtureProfessor  `yaml:"professors"`
	Articles         []FixtureArticle    `yaml:"articles"`
}

type FixtureUniversity struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type FixtureCollege struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	UniversityID string `yaml:"university_id"`
}

type FixtureDepartment struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	CollegeID string `yaml:"college_id"`
}

type FixtureField struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type FixtureMapping struct {
	DepartmentID string `yaml:"department_id"`
	FieldID      string `yaml:"field_id"`
}

type FixtureProfessor struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Position     string `yaml:"position"`
	Email        string `yaml:"email"`
	Phone        string `yaml:"phone"`
	Headshot     string `yaml:"headshot"`
	ScholarURL   string `yaml:"google_scholar_link"`
	DepartmentID string `yaml:"department_id"`
}

// FixtureArticle keeps the year untyped: scraped data holds numbers,
// strings and sentinels side by side.
type FixtureArticle struct {
	ID          string `yaml:"id"`
	ProfessorID string `yaml:"professor_id"`
	Title       string `yaml:"title"`
	Year        any    `yaml:"publication_year"`
	URL         string `yaml:"article_link"`
}

// LoadFixture reads and validates a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	return ParseFixture(raw)
}

// ParseFixture decodes and validates a YAML fixture.
func ParseFixture(raw []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every record has a unique id. Articles may point at
// professors that do not exist; readers drop them.
func (f *Fixture) Validate() error {
	checks := []struct {
		kind string
		ids  []string
	}{
		{"university", collectIDs(f.Universities, func(r FixtureUniversity) string { return r.ID })},
		{"college", collectIDs(f.Colleges, func(r FixtureCollege) string { return r.ID })},
		{"department", collectIDs(f.Departments, func(r FixtureDepartment) string { return r.ID })},
		{"field", collectIDs(f.Fields, func(r FixtureField) string { return r.ID })},
		{"professor", collectIDs(f.Professors, func(r FixtureProfessor) string { return r.ID })},
		{"article", collectIDs(f.Articles, func(r FixtureArticle) string { return r.ID })},
	}
	for _, c := range checks {
		seen := make(map[string]struct{}, len(c.ids))
		for i, id := range c.ids {
			if id == "" {
				return fmt.Errorf("%w: %s #%d has no id", ErrInvalidFixture, c.kind, i+1)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: duplicate %s id %q", ErrInvalidFixture, c.kind, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}

func collectIDs[T any](rows []T, id func(T) string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = id(r)
	}
	return out
}
