package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/okian/facultyhub/internal/domain/model"
)

// MemoryStore serves a fixture from memory. Records are joined once at load
// time and handed out as copies.
type MemoryStore struct {
	mu sync.RWMutex

	professors       []model.Professor // by name
	publications     []model.Publication
	universities     []model.University
	colleges         []model.College
	departments      []model.Department
	fields           []model.Field
	departmentFields []model.DepartmentField
}

// NewMemoryStore creates a store holding f. A nil fixture yields an empty
// store.
func NewMemoryStore(f *Fixture) (*MemoryStore, error) {
	s := &MemoryStore{}
	if err := s.Load(f); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the store contents with f.
func (s *MemoryStore) Load(f *Fixture) error {
	if f == nil {
		f = &Fixture{}
	}
	if err := f.Validate(); err != nil {
		return err
	}

	unis := make(map[string]model.University, len(f.Universities))
	universities := make([]model.University, 0, len(f.Universities))
	for _, r := range f.Universities {
		u := model.University{ID: r.ID, Name: r.Name}
		unis[r.ID] = u
		universities = append(universities, u)
	}

	cols := make(map[string]model.College, len(f.Colleges))
	colleges := make([]model.College, 0, len(f.Colleges))
	for _, r := range f.Colleges {
		c := model.College{ID: r.ID, Name: r.Name, UniversityID: r.UniversityID, UniversityName: unis[r.UniversityID].Name}
		cols[r.ID] = c
		colleges = append(colleges, c)
	}

	deps := make(map[string]model.Department, len(f.Departments))
	departments := make([]model.Department, 0, len(f.Departments))
	for _, r := range f.Departments {
		c := cols[r.CollegeID]
		d := model.Department{ID: r.ID, Name: r.Name, CollegeID: r.CollegeID, CollegeName: c.Name, UniversityName: c.UniversityName}
		deps[r.ID] = d
		departments = append(departments, d)
	}

	flds := make(map[string]model.Field, len(f.Fields))
	fields := make([]model.Field, 0, len(f.Fields))
	for _, r := range f.Fields {
		fl := model.Field{ID: r.ID, Name: r.Name, Description: r.Description}
		flds[r.ID] = fl
		fields = append(fields, fl)
	}

	mappings := make([]model.DepartmentField, 0, len(f.DepartmentFields))
	for _, r := range f.DepartmentFields {
		mappings = append(mappings, model.DepartmentField{
			DepartmentID:   r.DepartmentID,
			DepartmentName: deps[r.DepartmentID].Name,
			FieldID:        r.FieldID,
			FieldName:      flds[r.FieldID].Name,
		})
	}

	professors := make([]model.Professor, 0, len(f.Professors))
	for _, r := range f.Professors {
		d := deps[r.DepartmentID]
		professors = append(professors, model.Professor{
			ID:             r.ID,
			Name:           r.Name,
			Position:       r.Position,
			Email:          r.Email,
			Phone:          r.Phone,
			Headshot:       r.Headshot,
			ScholarURL:     r.ScholarURL,
			DepartmentID:   r.DepartmentID,
			DepartmentName: d.Name,
			CollegeName:    d.CollegeName,
			UniversityName: d.UniversityName,
		})
	}

	publications := make([]model.Publication, 0, len(f.Articles))
	for _, r := range f.Articles {
		publications = append(publications, model.Publication{
			ID:          r.ID,
			ProfessorID: r.ProfessorID,
			Title:       r.Title,
			Year:        model.NewYear(r.Year),
			URL:         r.URL,
		})
	}

	slices.SortStableFunc(professors, func(a, b model.Professor) int { return cmp.Compare(a.Name, b.Name) })
	slices.SortStableFunc(universities, func(a, b model.University) int { return cmp.Compare(a.Name, b.Name) })
	slices.SortStableFunc(colleges, func(a, b model.College) int { return cmp.Compare(a.Name, b.Name) })
	slices.SortStableFunc(departments, func(a, b model.Department) int { return cmp.Compare(a.Name, b.Name) })
	slices.SortStableFunc(fields, func(a, b model.Field) int { return cmp.Compare(a.Name, b.Name) })

	s.mu.Lock()
	defer s.mu.Unlock()
	s.professors = professors
	s.publications = publications
	s.universities = universities
	s.colleges = colleges
	s.departments = departments
	s.fields = fields
	s.departmentFields = mappings
	return nil
}

// Driver implements Store.
func (s *MemoryStore) Driver() string { return DriverMemory }

// Professors implements Store.
func (s *MemoryStore) Professors(ctx context.Context) ([]model.Professor, error) {
	defer observe(DriverMemory, "professors", time.Now(), nil)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.professors), nil
}

// Professor implements Store.
func (s *MemoryStore) Professor(ctx context.Context, id string) (model.Professor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.professors, id, func(p model.Professor) string { return p.ID })
}

// Publications implements Store.
func (s *MemoryStore) Publications(ctx context.Context) ([]model.Publication, error) {
	defer observe(DriverMemory, "publications", time.Now(), nil)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.publications), nil
}

// PublicationsByProfessor implements Store.
func (s *MemoryStore) PublicationsByProfessor(ctx context.Context, professorID string) ([]model.Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Publication, 0)
	for _, p := range s.publications {
		if p.ProfessorID == professorID {
			out = append(out, p)
		}
	}
	return out, nil
}

// Publication implements Store.
func (s *MemoryStore) Publication(ctx context.Context, id string) (model.Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.publications, id, func(p model.Publication) string { return p.ID })
}

// Universities implements Store.
func (s *MemoryStore) Universities(ctx context.Context) ([]model.University, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.universities), nil
}

// University implements Store.
func (s *MemoryStore) University(ctx context.Context, id string) (model.University, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.universities, id, func(u model.University) string { return u.ID })
}

// Colleges implements Store.
func (s *MemoryStore) Colleges(ctx context.Context) ([]model.College, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.colleges), nil
}

// Departments implements Store.
func (s *MemoryStore) Departments(ctx context.Context) ([]model.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.departments), nil
}

// Department implements Store.
func (s *MemoryStore) Department(ctx context.Context, id string) (model.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.departments, id, func(d model.Department) string { return d.ID })
}

// Fields implements Store.
func (s *MemoryStore) Fields(ctx context.Context) ([]model.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.fields), nil
}

// Field implements Store.
func (s *MemoryStore) Field(ctx context.Context, id string) (model.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.fields, id, func(f model.Field) string { return f.ID })
}

// DepartmentFields implements Store.
func (s *MemoryStore) DepartmentFields(ctx context.Context) ([]model.DepartmentField, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.departmentFields), nil
}

// Ping implements Store.
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

func findByID[T any](rows []T, id string, key func(T) string) (T, error) {
	for _, r := range rows {
		if key(r) == id {
			return r, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}
