// Package report builds the productivity report printed by faculty-report:
// overall totals, the top researchers and the leading professors of the
// ranked directory.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	service "github.com/okian/facultyhub/internal/app"
	"github.com/okian/facultyhub/internal/domain/types"
)

// DefaultTop is the number of ranked professors listed when Options.Top is
// zero.
const DefaultTop = 10

// ErrUnknownFormat is returned by Write for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown report format")

// Source provides the ranked directory.
type Source interface {
	Directory(ctx context.Context, q service.DirectoryQuery) (types.DirectoryPage, error)
}

// Options selects and orders the professors covered by a report.
type Options struct {
	Universities []string
	Fields       []string
	Sort         string
	Order        string
	Top          int
}

// Summary aggregates metrics over every selected professor.
type Summary struct {
	Professors            int     `json:"professors"`
	TotalPapers           int     `json:"total_papers"`
	AvgPapersPerProfessor float64 `json:"avg_papers_per_professor"`
	PublishedThisYear     int     `json:"published_this_year"`
	PublishedLastYear     int     `json:"published_last_year"`
	TopResearchers        int     `json:"top_researchers"`
}

// Report is the complete output of one run.
type Report struct {
	GeneratedAt    time.Time              `json:"generated_at"`
	Sort           string                 `json:"sort"`
	Order          string                 `json:"order"`
	Summary        Summary                `json:"summary"`
	TopResearchers []types.ProfessorEntry `json:"top_researchers"`
	Ranked         []types.ProfessorEntry `json:"ranked"`
}

// Build walks every page of the directory selected by opts and aggregates
// it.
func Build(ctx context.Context, src Source, opts Options, now time.Time) (Report, error) {
	top := opts.Top
	if top <= 0 {
		top = DefaultTop
	}

	q := service.DirectoryQuery{
		Universities: opts.Universities,
		Fields:       opts.Fields,
		Sort:         opts.Sort,
		Order:        opts.Order,
	}
	rep := Report{
		GeneratedAt:    now,
		TopResearchers: []types.ProfessorEntry{},
		Ranked:         []types.ProfessorEntry{},
	}

	for {
		page, err := src.Directory(ctx, q)
		if err != nil {
			return Report{}, err
		}
		rep.Sort, rep.Order = page.Sort, page.Order
		for _, p := range page.Professors {
			rep.add(p, top)
		}
		q.Offset += len(page.Professors)
		if len(page.Professors) == 0 || q.Offset >= page.Total {
			break
		}
	}

	rep.Summary.AvgPapersPerProfessor = perProfessor(rep.Summary.TotalPapers, rep.Summary.Professors)
	return rep, nil
}

func (r *Report) add(p types.ProfessorEntry, top int) {
	s := &r.Summary
	s.Professors++
	s.TotalPapers += p.TotalPapers
	if p.PublishedThisYear {
		s.PublishedThisYear++
	}
	if p.PublishedLastYear {
		s.PublishedLastYear++
	}
	if p.TopResearcher {
		s.TopResearchers++
		r.TopResearchers = append(r.TopResearchers, p)
	}
	if len(r.Ranked) < top {
		r.Ranked = append(r.Ranked, p)
	}
}

// perProfessor rounds total/n to two decimals. Zero professors give zero.
func perProfessor(total, n int) float64 {
	if n == 0 {
		return 0
	}
	avg, _ := decimal.NewFromInt(int64(total)).
		Div(decimal.NewFromInt(int64(n))).
		Round(2).
		Float64()
	return avg
}
