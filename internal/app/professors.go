package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/facultyhub/internal/domain/directory"
	"github.com/okian/facultyhub/internal/domain/model"
	"github.com/okian/facultyhub/internal/domain/ranking"
	"github.com/okian/facultyhub/internal/domain/search"
	"github.com/okian/facultyhub/internal/domain/types"
	"github.com/okian/facultyhub/pkg/metrics"
)

// DirectoryQuery selects, orders and pages the directory. Zero values mean
// no filter, name ascending, first page of the default size.
type DirectoryQuery struct {
	Universities []string
	Fields       []string
	Sort         string
	Order        string
	Offset       int
	Limit        int
}

// Directory returns one page of the filtered and ranked directory.
func (s *Service) Directory(ctx context.Context, q DirectoryQuery) (types.DirectoryPage, error) {
	key, err := ranking.ParseSortKey(q.Sort)
	if err != nil {
		return types.DirectoryPage{}, fmt.Errorf("%w: %q", err, q.Sort)
	}
	dir, err := ranking.ParseDirection(q.Order)
	if err != nil {
		return types.DirectoryPage{}, fmt.Errorf("%w: %q", err, q.Order)
	}
	offset, limit, err := s.page(q.Offset, q.Limit)
	if err != nil {
		return types.DirectoryPage{}, err
	}

	profs, _, err := s.loadRoster(ctx)
	if err != nil {
		return types.DirectoryPage{}, err
	}
	lookup, err := s.fieldLookup(ctx)
	if err != nil {
		return types.DirectoryPage{}, err
	}

	start := time.Now()
	sel := directory.Selection{Universities: q.Universities, Fields: q.Fields}
	ranked := ranking.Rank(profs, sel, lookup, key, dir)
	metrics.RecordRankingLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordDirectoryRequest(string(key))

	page := types.DirectoryPage{
		Total:      len(ranked),
		Offset:     offset,
		Limit:      limit,
		Sort:       string(key),
		Order:      string(dir),
		Professors: []types.ProfessorEntry{},
	}
	if offset < len(ranked) {
		end := min(offset+limit, len(ranked))
		page.Professors = entries(ranked[offset:end], lookup, offset+1)
	}
	return page, nil
}

// Roster returns every professor with metrics in name order.
func (s *Service) Roster(ctx context.Context) ([]types.ProfessorEntry, error) {
	profs, _, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}
	lookup, err := s.fieldLookup(ctx)
	if err != nil {
		return nil, err
	}
	return entries(profs, lookup, 0), nil
}

// Professor returns one professor with metrics.
func (s *Service) Professor(ctx context.Context, id string) (types.ProfessorEntry, error) {
	if s.store == nil {
		return types.ProfessorEntry{}, ErrNoStore
	}
	p, err := s.store.Professor(ctx, id)
	if err != nil {
		return types.ProfessorEntry{}, err
	}
	pubs, err := s.store.PublicationsByProfessor(ctx, id)
	if err != nil {
		return types.ProfessorEntry{}, err
	}
	lookup, err := s.fieldLookup(ctx)
	if err != nil {
		return types.ProfessorEntry{}, err
	}

	p.Metrics = s.calc.Compute(pubs)
	return types.NewProfessorEntry(p, 0, lookup.Resolve(p.DepartmentName), ranking.IsTopResearcher(p)), nil
}

// ProfessorsByDepartment returns the professors of one department in name
// order.
func (s *Service) ProfessorsByDepartment(ctx context.Context, departmentID string) ([]types.ProfessorEntry, error) {
	profs, _, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}
	lookup, err := s.fieldLookup(ctx)
	if err != nil {
		return nil, err
	}

	inDept := make([]model.Professor, 0)
	for _, p := range profs {
		if p.DepartmentID == departmentID {
			inDept = append(inDept, p)
		}
	}
	return entries(inDept, lookup, 0), nil
}

// Search returns up to search.MaxResults professors matching query across
// the whole roster.
func (s *Service) Search(ctx context.Context, query string) ([]types.ProfessorEntry, error) {
	profs, _, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}
	lookup, err := s.fieldLookup(ctx)
	if err != nil {
		return nil, err
	}

	found := search.Search(profs, query)
	metrics.RecordSearch(len(found))
	return entries(found, lookup, 0), nil
}

// entries projects profs. firstRank numbers them from that value; zero
// leaves them unranked.
func entries(profs []model.Professor, lookup *directory.FieldLookup, firstRank int) []types.ProfessorEntry {
	out := make([]types.ProfessorEntry, len(profs))
	for i, p := range profs {
		rank := 0
		if firstRank > 0 {
			rank = firstRank + i
		}
		out[i] = types.NewProfessorEntry(p, rank, lookup.Resolve(p.DepartmentName), ranking.IsTopResearcher(p))
	}
	return out
}

// page validates and clamps paging parameters.
func (s *Service) page(offset, limit int) (int, int, error) {
	if offset < 0 || limit < 0 {
		return 0, 0, fmt.Errorf("%w: offset=%d limit=%d", ErrInvalidPage, offset, limit)
	}
	if limit == 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	return offset, limit, nil
}
