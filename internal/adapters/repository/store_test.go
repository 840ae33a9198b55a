package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// storeContract checks behavior every Store implementation shares. s must
// hold fixtureYAML.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("professors ordered by name with affiliation", func(t *testing.T) {
		profs, err := s.Professors(ctx)
		if err != nil {
			t.Fatalf("professors: %v", err)
		}
		if len(profs) != 3 {
			t.Fatalf("expected 3 professors, got %d", len(profs))
		}
		if profs[0].ID != "p1" || profs[1].ID != "p3" || profs[2].ID != "p2" {
			t.Errorf("unexpected order: %s %s %s", profs[0].ID, profs[1].ID, profs[2].ID)
		}
		ada := profs[0]
		if ada.DepartmentName != "Computer Science" || ada.CollegeName != "College of Computing" || ada.UniversityName != "Drexel University" {
			t.Errorf("unexpected affiliation: %+v", ada)
		}
		if ada.Email != "ada@example.edu" {
			t.Errorf("unexpected email %q", ada.Email)
		}
		if profs[1].DepartmentName != "" || profs[1].UniversityName != "" {
			t.Errorf("professor without department should have empty affiliation: %+v", profs[1])
		}
	})

	t.Run("single professor", func(t *testing.T) {
		p, err := s.Professor(ctx, "p2")
		if err != nil {
			t.Fatalf("professor: %v", err)
		}
		if p.Name != "Zed Young" || p.UniversityName != "University of Pennsylvania" {
			t.Errorf("unexpected professor %+v", p)
		}
		if _, err := s.Professor(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("publications in storage order", func(t *testing.T) {
		pubs, err := s.Publications(ctx)
		if err != nil {
			t.Fatalf("publications: %v", err)
		}
		want := []string{"a1", "a2", "a3", "a4", "a5"}
		if len(pubs) != len(want) {
			t.Fatalf("expected %d publications, got %d", len(want), len(pubs))
		}
		for i, id := range want {
			if pubs[i].ID != id {
				t.Errorf("position %d: want %s got %s", i, id, pubs[i].ID)
			}
		}
		if pubs[0].Year != "2024" || pubs[1].Year != "2023" || pubs[2].Year != "No year" {
			t.Errorf("unexpected years: %q %q %q", pubs[0].Year, pubs[1].Year, pubs[2].Year)
		}
		if pubs[3].Year.Valid() {
			t.Errorf("absent year should read back invalid, got %q", pubs[3].Year)
		}
		if pubs[4].URL != "https://example.org/orphan" {
			t.Errorf("unexpected url %q", pubs[4].URL)
		}
	})

	t.Run("publications by professor", func(t *testing.T) {
		pubs, err := s.PublicationsByProfessor(ctx, "p1")
		if err != nil {
			t.Fatalf("publications by professor: %v", err)
		}
		if len(pubs) != 3 || pubs[0].ID != "a1" || pubs[2].ID != "a4" {
			t.Errorf("unexpected publications %+v", pubs)
		}
		none, err := s.PublicationsByProfessor(ctx, "p3")
		if err != nil || len(none) != 0 {
			t.Errorf("expected no publications, got %v %v", none, err)
		}
		if _, err := s.Publication(ctx, "a3"); err != nil {
			t.Errorf("publication: %v", err)
		}
		if _, err := s.Publication(ctx, "zz"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("catalog", func(t *testing.T) {
		unis, err := s.Universities(ctx)
		if err != nil || len(unis) != 2 || unis[0].Name != "Drexel University" {
			t.Errorf("unexpected universities %v %v", unis, err)
		}
		if u, err := s.University(ctx, "u2"); err != nil || u.Name != "University of Pennsylvania" {
			t.Errorf("unexpected university %v %v", u, err)
		}
		cols, err := s.Colleges(ctx)
		if err != nil || len(cols) != 2 || cols[0].UniversityName != "Drexel University" {
			t.Errorf("unexpected colleges %v %v", cols, err)
		}
		deps, err := s.Departments(ctx)
		if err != nil || len(deps) != 2 || deps[0].Name != "Bioengineering" || deps[0].UniversityName != "University of Pennsylvania" {
			t.Errorf("unexpected departments %v %v", deps, err)
		}
		if d, err := s.Department(ctx, "d1"); err != nil || d.CollegeID != "c1" {
			t.Errorf("unexpected department %v %v", d, err)
		}
		fields, err := s.Fields(ctx)
		if err != nil || len(fields) != 1 || fields[0].Description != "Software and systems" {
			t.Errorf("unexpected fields %v %v", fields, err)
		}
		if _, err := s.Field(ctx, "f9"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		maps, err := s.DepartmentFields(ctx)
		if err != nil || len(maps) != 1 || maps[0].DepartmentName != "Computer Science" || maps[0].FieldName != "Computing" {
			t.Errorf("unexpected mappings %v %v", maps, err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := s.Ping(ctx); err != nil {
			t.Errorf("ping: %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	s, err := NewMemoryStore(testFixture(t))
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	defer s.Close()

	if s.Driver() != DriverMemory {
		t.Errorf("unexpected driver %q", s.Driver())
	}
	storeContract(t, s)

	t.Run("results are copies", func(t *testing.T) {
		profs, _ := s.Professors(context.Background())
		profs[0].Name = "changed"
		again, _ := s.Professors(context.Background())
		if again[0].Name != "Ada Lovelace" {
			t.Errorf("store leaked its slice")
		}
	})

	t.Run("nil fixture is empty", func(t *testing.T) {
		empty, err := NewMemoryStore(nil)
		if err != nil {
			t.Fatalf("new memory store: %v", err)
		}
		profs, err := empty.Professors(context.Background())
		if err != nil || len(profs) != 0 {
			t.Errorf("expected empty store, got %v %v", profs, err)
		}
	})
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(ctx, WithSQLitePath(filepath.Join(t.TempDir(), "faculty.db")))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()

	empty, err := s.Empty(ctx)
	if err != nil || !empty {
		t.Fatalf("new database should be empty: %v %v", empty, err)
	}
	if err := s.Seed(ctx, testFixture(t)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate should be repeatable: %v", err)
	}

	if s.Driver() != DriverSQLite {
		t.Errorf("unexpected driver %q", s.Driver())
	}
	storeContract(t, s)

	t.Run("seeding twice fails and rolls back", func(t *testing.T) {
		if err := s.Seed(ctx, testFixture(t)); err == nil {
			t.Fatal("expected duplicate key error")
		}
		profs, err := s.Professors(ctx)
		if err != nil || len(profs) != 3 {
			t.Errorf("expected original rows after rollback, got %d %v", len(profs), err)
		}
	})
}
