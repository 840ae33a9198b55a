package service

import (
	"context"
	"fmt"

	"github.com/okian/facultyhub/internal/domain/model"
	"github.com/okian/facultyhub/internal/domain/types"
)

// Universities lists universities by name.
func (s *Service) Universities(ctx context.Context) ([]types.University, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	rows, err := s.store.Universities(ctx)
	if err != nil {
		return nil, err
	}
	return project(rows, types.NewUniversity), nil
}

func (s *Service) University(ctx context.Context, id string) (types.University, error) {
	if s.store == nil {
		return types.University{}, ErrNoStore
	}
	u, err := s.store.University(ctx, id)
	if err != nil {
		return types.University{}, err
	}
	return types.NewUniversity(u), nil
}

// Departments lists departments by name.
func (s *Service) Departments(ctx context.Context) ([]types.Department, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	rows, err := s.store.Departments(ctx)
	if err != nil {
		return nil, err
	}
	return project(rows, types.NewDepartment), nil
}

func (s *Service) Department(ctx context.Context, id string) (types.Department, error) {
	if s.store == nil {
		return types.Department{}, ErrNoStore
	}
	d, err := s.store.Department(ctx, id)
	if err != nil {
		return types.Department{}, err
	}
	return types.NewDepartment(d), nil
}

// DepartmentsByCollege lists the departments of one college.
func (s *Service) DepartmentsByCollege(ctx context.Context, collegeID string) ([]types.Department, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	rows, err := s.store.Departments(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]types.Department, 0)
	for _, d := range rows {
		if d.CollegeID == collegeID {
			out = append(out, types.NewDepartment(d))
		}
	}
	return out, nil
}

// Fields lists fields of interest by name.
func (s *Service) Fields(ctx context.Context) ([]types.Field, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	rows, err := s.store.Fields(ctx)
	if err != nil {
		return nil, err
	}
	return project(rows, types.NewField), nil
}

func (s *Service) Field(ctx context.Context, id string) (types.Field, error) {
	if s.store == nil {
		return types.Field{}, ErrNoStore
	}
	f, err := s.store.Field(ctx, id)
	if err != nil {
		return types.Field{}, err
	}
	return types.NewField(f), nil
}

// FieldDepartments lists the departments mapped to a field.
func (s *Service) FieldDepartments(ctx context.Context, fieldID string) ([]types.Department, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	if _, err := s.store.Field(ctx, fieldID); err != nil {
		return nil, err
	}
	mappings, err := s.store.DepartmentFields(ctx)
	if err != nil {
		return nil, err
	}
	depts, err := s.store.Departments(ctx)
	if err != nil {
		return nil, err
	}

	mapped := make(map[string]struct{})
	for _, m := range mappings {
		if m.FieldID == fieldID {
			mapped[m.DepartmentID] = struct{}{}
		}
	}
	out := make([]types.Department, 0, len(mapped))
	for _, d := range depts {
		if _, ok := mapped[d.ID]; ok {
			out = append(out, types.NewDepartment(d))
		}
	}
	return out, nil
}

// DepartmentField returns the field a department is mapped to.
func (s *Service) DepartmentField(ctx context.Context, departmentID string) (types.Field, error) {
	if s.store == nil {
		return types.Field{}, ErrNoStore
	}
	mappings, err := s.store.DepartmentFields(ctx)
	if err != nil {
		return types.Field{}, err
	}
	for _, m := range mappings {
		if m.DepartmentID != departmentID {
			continue
		}
		f, err := s.store.Field(ctx, m.FieldID)
		if err != nil {
			return types.Field{}, err
		}
		return types.NewField(f), nil
	}
	return types.Field{}, fmt.Errorf("%w: no field for department %s", model.ErrNotFound, departmentID)
}

func project[M, T any](rows []M, conv func(M) T) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = conv(r)
	}
	return out
}
