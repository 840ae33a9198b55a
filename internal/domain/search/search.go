// Package search implements the quick-find box over the professor roster.
package search

import (
	"strings"

	"github.com/okian/facultyhub/internal/domain/model"
)

// MaxResults caps the number of suggestions returned for a query.
const MaxResults = 8

// Search returns up to MaxResults professors whose name, department or
// university contains query, ignoring case, in roster order. A blank query
// matches nothing. Surrounding spaces in a non-blank query are significant.
func Search(roster []model.Professor, query string) []model.Professor {
	out := make([]model.Professor, 0, MaxResults)
	if strings.TrimSpace(query) == "" {
		return out
	}

	q := strings.ToLower(query)
	for _, p := range roster {
		if matches(p, q) {
			out = append(out, p)
			if len(out) == MaxResults {
				break
			}
		}
	}
	return out
}

func matches(p model.Professor, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.DepartmentName), q) ||
		strings.Contains(strings.ToLower(p.UniversityName), q)
}
