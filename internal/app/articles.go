package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/facultyhub/internal/domain/dedupe"
	"github.com/okian/facultyhub/internal/domain/model"
	"github.com/okian/facultyhub/internal/domain/types"
)

// Articles returns every publication, newest first, one per title. Rows
// whose professor is gone are kept with an empty affiliation.
func (s *Service) Articles(ctx context.Context) ([]types.Article, error) {
	pubs, authors, err := s.publicationsWithAuthors(ctx)
	if err != nil {
		return nil, err
	}
	return join(dedupe.ByTitle(newestFirst(pubs)), authors, false), nil
}

// Article returns one publication joined with its author.
func (s *Service) Article(ctx context.Context, id string) (types.Article, error) {
	if s.store == nil {
		return types.Article{}, ErrNoStore
	}
	pub, err := s.store.Publication(ctx, id)
	if err != nil {
		return types.Article{}, err
	}

	var author model.Professor
	if pub.ProfessorID != "" {
		author, err = s.store.Professor(ctx, pub.ProfessorID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return types.Article{}, err
		}
	}
	return types.NewArticle(pub, author), nil
}

// ProfessorPublications returns the publications of one professor, newest
// first, one per title. An unknown professor yields an empty list.
func (s *Service) ProfessorPublications(ctx context.Context, professorID string) ([]types.Article, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	author, err := s.store.Professor(ctx, professorID)
	if errors.Is(err, model.ErrNotFound) {
		return []types.Article{}, nil
	}
	if err != nil {
		return nil, err
	}
	pubs, err := s.store.PublicationsByProfessor(ctx, professorID)
	if err != nil {
		return nil, err
	}

	pubs = dedupe.ByTitle(newestFirst(pubs))
	out := make([]types.Article, len(pubs))
	for i, p := range pubs {
		out[i] = types.NewArticle(p, author)
	}
	return out, nil
}

// ArticlesByDepartment returns the publications of every professor in a
// department, newest first. Titles shared by co-authors are all listed.
func (s *Service) ArticlesByDepartment(ctx context.Context, departmentID string) ([]types.Article, error) {
	pubs, authors, err := s.publicationsWithAuthors(ctx)
	if err != nil {
		return nil, err
	}

	inDept := make([]model.Publication, 0)
	for _, p := range pubs {
		if a, ok := authors[p.ProfessorID]; ok && a.DepartmentID == departmentID {
			inDept = append(inDept, p)
		}
	}
	return join(newestFirst(inDept), authors, true), nil
}

// ArticlesByYearRange returns publications with a numeric year in
// [from, to], newest first, one per title.
func (s *Service) ArticlesByYearRange(ctx context.Context, from, to int) ([]types.Article, error) {
	if from > to {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidYearRange, from, to)
	}
	pubs, authors, err := s.publicationsWithAuthors(ctx)
	if err != nil {
		return nil, err
	}

	inRange := make([]model.Publication, 0)
	for _, p := range pubs {
		if y, ok := p.Year.Int(); ok && y >= from && y <= to {
			inRange = append(inRange, p)
		}
	}
	return join(dedupe.ByTitle(newestFirst(inRange)), authors, false), nil
}

// SearchArticles returns publications whose title contains query, ignoring
// case, newest first and one per title. A blank query matches nothing.
func (s *Service) SearchArticles(ctx context.Context, query string) ([]types.Article, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []types.Article{}, nil
	}
	pubs, authors, err := s.publicationsWithAuthors(ctx)
	if err != nil {
		return nil, err
	}

	found := make([]model.Publication, 0)
	for _, p := range pubs {
		if strings.Contains(strings.ToLower(p.Title), q) {
			found = append(found, p)
		}
	}
	return join(dedupe.ByTitle(newestFirst(found)), authors, false), nil
}

func (s *Service) publicationsWithAuthors(ctx context.Context) ([]model.Publication, map[string]model.Professor, error) {
	if s.store == nil {
		return nil, nil, ErrNoStore
	}
	pubs, err := s.store.Publications(ctx)
	if err != nil {
		return nil, nil, err
	}
	profs, err := s.store.Professors(ctx)
	if err != nil {
		return nil, nil, err
	}

	authors := make(map[string]model.Professor, len(profs))
	for _, p := range profs {
		authors[p.ID] = p
	}
	return pubs, authors, nil
}

// join projects pubs with their authors. With requireAuthor set,
// publications without a known author are dropped.
func join(pubs []model.Publication, authors map[string]model.Professor, requireAuthor bool) []types.Article {
	out := make([]types.Article, 0, len(pubs))
	for _, p := range pubs {
		a, ok := authors[p.ProfessorID]
		if !ok && requireAuthor {
			continue
		}
		out = append(out, types.NewArticle(p, a))
	}
	return out
}

// newestFirst orders a copy of pubs by year descending. Non-numeric years go
// last; ties keep storage order.
func newestFirst(pubs []model.Publication) []model.Publication {
	out := slices.Clone(pubs)
	slices.SortStableFunc(out, func(a, b model.Publication) int {
		ya, okA := a.Year.Int()
		yb, okB := b.Year.Int()
		switch {
		case okA && okB:
			return cmp.Compare(yb, ya)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
	return out
}
