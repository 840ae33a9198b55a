// Package directory narrows the professor roster to a user's selection.
package directory

import "github.com/okian/facultyhub/internal/domain/model"

// Selection holds the chosen universities and fields of interest. An empty
// dimension places no constraint.
type Selection struct {
	Universities []string
	Fields       []string
}

// Empty reports whether the selection has no constraint at all.
func (s Selection) Empty() bool {
	return len(s.Universities) == 0 && len(s.Fields) == 0
}

// FieldLookup resolves a department name to its field of interest. It is
// built for a single request and never shared.
type FieldLookup struct {
	byDepartment map[string]string
}

// NewFieldLookup indexes mappings by department name. When a department is
// mapped more than once the first mapping wins.
func NewFieldLookup(mappings []model.DepartmentField) *FieldLookup {
	l := &FieldLookup{byDepartment: make(map[string]string, len(mappings))}
	for _, m := range mappings {
		if m.DepartmentName == "" || m.FieldName == "" {
			continue
		}
		if _, ok := l.byDepartment[m.DepartmentName]; ok {
			continue
		}
		l.byDepartment[m.DepartmentName] = m.FieldName
	}
	return l
}

// Resolve returns the field of a department, or the department name itself
// when it has no mapping. A nil lookup resolves every name to itself.
func (l *FieldLookup) Resolve(department string) string {
	if l == nil {
		return department
	}
	if f, ok := l.byDepartment[department]; ok {
		return f
	}
	return department
}

// Len returns the number of mapped departments.
func (l *FieldLookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.byDepartment)
}

// Filter keeps professors matching sel, preserving order. Values inside a
// dimension are alternatives; both dimensions must match. The result never
// aliases profs.
func Filter(profs []model.Professor, sel Selection, lookup *FieldLookup) []model.Professor {
	out := make([]model.Professor, 0, len(profs))
	if sel.Empty() {
		return append(out, profs...)
	}

	universities := toSet(sel.Universities)
	fields := toSet(sel.Fields)
	for _, p := range profs {
		if len(universities) > 0 {
			if _, ok := universities[p.UniversityName]; !ok {
				continue
			}
		}
		if len(fields) > 0 {
			if _, ok := fields[lookup.Resolve(p.DepartmentName)]; !ok {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
