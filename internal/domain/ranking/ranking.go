// Package ranking orders the professor directory.
//
// Top researchers always come first. Inside each group professors are
// ordered by the requested key with a stable sort, so equal professors keep
// their incoming order.
package ranking

import (
	"cmp"
	"slices"
	"strings"

	"github.com/okian/facultyhub/internal/domain/directory"
	"github.com/okian/facultyhub/internal/domain/model"
)

// Top researcher policy.
const (
	TopResearcherMinPapers     = 300
	TopResearcherMinAvgPerYear = 6
)

// SortKey names the attribute the directory is ordered by.
type SortKey string

// Supported sort keys.
const (
	SortByName              SortKey = "name"
	SortByPublishedThisYear SortKey = "published_this_year"
	SortByPublishedLastYear SortKey = "published_last_year"
	SortByTotalPapers       SortKey = "total_papers"
	SortByAvgPapersPerYear  SortKey = "avg_papers_per_year"
)

// Direction is the sort direction.
type Direction string

// Supported directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortKeys lists every supported key.
func SortKeys() []SortKey {
	return []SortKey{
		SortByName,
		SortByPublishedThisYear,
		SortByPublishedLastYear,
		SortByTotalPapers,
		SortByAvgPapersPerYear,
	}
}

// ParseSortKey validates a sort key. The empty string selects SortByName.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByName, nil
	}
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys(), k) {
		return k, nil
	}
	return "", ErrUnknownSortKey
}

// ParseDirection validates a direction. The empty string selects Asc.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", ErrUnknownDirection
}

// IsTopResearcher reports whether p meets the top researcher policy.
func IsTopResearcher(p model.Professor) bool {
	m := p.Metrics
	return m.TotalPapers >= TopResearcherMinPapers &&
		(m.PublishedThisYear || m.PublishedLastYear) &&
		m.AvgPapersPerYear >= TopResearcherMinAvgPerYear
}

// Sort returns a reordered copy of profs: top researchers first, each group
// ordered by key and dir. Unknown keys order by name.
func Sort(profs []model.Professor, key SortKey, dir Direction) []model.Professor {
	top := make([]model.Professor, 0)
	rest := make([]model.Professor, 0, len(profs))
	for _, p := range profs {
		if IsTopResearcher(p) {
			top = append(top, p)
		} else {
			rest = append(rest, p)
		}
	}

	compare := comparator(key, dir)
	slices.SortStableFunc(top, compare)
	slices.SortStableFunc(rest, compare)

	return append(top, rest...)
}

// Rank filters profs by sel and sorts the result.
func Rank(profs []model.Professor, sel directory.Selection, lookup *directory.FieldLookup, key SortKey, dir Direction) []model.Professor {
	return Sort(directory.Filter(profs, sel, lookup), key, dir)
}

func comparator(key SortKey, dir Direction) func(a, b model.Professor) int {
	var c func(a, b model.Professor) int
	switch key {
	case SortByPublishedThisYear:
		c = func(a, b model.Professor) int {
			return cmp.Compare(flag(a.Metrics.PublishedThisYear), flag(b.Metrics.PublishedThisYear))
		}
	case SortByPublishedLastYear:
		c = func(a, b model.Professor) int {
			return cmp.Compare(flag(a.Metrics.PublishedLastYear), flag(b.Metrics.PublishedLastYear))
		}
	case SortByTotalPapers:
		c = func(a, b model.Professor) int {
			return cmp.Compare(a.Metrics.TotalPapers, b.Metrics.TotalPapers)
		}
	case SortByAvgPapersPerYear:
		c = func(a, b model.Professor) int {
			return cmp.Compare(a.Metrics.AvgPapersPerYear, b.Metrics.AvgPapersPerYear)
		}
	default:
		c = func(a, b model.Professor) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}

	if dir == Desc {
		return func(a, b model.Professor) int { return c(b, a) }
	}
	return c
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
