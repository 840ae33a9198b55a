// Package productivity derives publication metrics for professors.
package productivity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/okian/facultyhub/internal/domain/dedupe"
	"github.com/okian/facultyhub/internal/domain/model"
)

// DefaultFallbackDivisor divides the paper count when a professor has papers
// but none of them carries a usable year.
const DefaultFallbackDivisor = 5

const avgPrecision = 1

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithClock sets the time source used to decide the current and previous year.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithFallbackDivisor overrides DefaultFallbackDivisor.
func WithFallbackDivisor(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.fallbackDivisor = n
		}
	}
}

// Calculator computes Metrics from publication rows.
type Calculator struct {
	now             func() time.Time
	fallbackDivisor int
}

// NewCalculator creates a Calculator reading the wall clock.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		now:             time.Now,
		fallbackDivisor: DefaultFallbackDivisor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute returns the metrics of a single professor's publications using
// the default fallback divisor.
func Compute(pubs []model.Publication, now time.Time) model.Metrics {
	return compute(pubs, now, DefaultFallbackDivisor)
}

// Compute returns the metrics for one professor's publications.
func (c *Calculator) Compute(pubs []model.Publication) model.Metrics {
	return compute(pubs, c.now(), c.fallbackDivisor)
}

// ComputeBatch groups publications by professor and computes metrics for
// each group. Rows keep their relative order inside a group, so the first
// occurrence of a title is the one that counts.
func (c *Calculator) ComputeBatch(pubs []model.Publication) map[string]model.Metrics {
	groups := make(map[string][]model.Publication)
	for _, p := range pubs {
		groups[p.ProfessorID] = append(groups[p.ProfessorID], p)
	}

	now := c.now()
	out := make(map[string]model.Metrics, len(groups))
	for id, g := range groups {
		out[id] = compute(g, now, c.fallbackDivisor)
	}
	return out
}

// Attach returns copies of profs with Metrics filled from pubs. Professors
// without publications get zero metrics.
func (c *Calculator) Attach(profs []model.Professor, pubs []model.Publication) []model.Professor {
	byProfessor := c.ComputeBatch(pubs)
	out := make([]model.Professor, len(profs))
	for i, p := range profs {
		p.Metrics = byProfessor[p.ID]
		out[i] = p
	}
	return out
}

func compute(pubs []model.Publication, now time.Time, fallbackDivisor int) model.Metrics {
	unique := dedupe.ByTitle(pubs)
	if len(unique) == 0 {
		return model.Metrics{}
	}

	thisYear := model.YearOf(now.Year())
	lastYear := model.YearOf(now.Year() - 1)

	m := model.Metrics{TotalPapers: len(unique)}
	years := make(map[model.Year]struct{})
	for _, p := range unique {
		switch p.Year {
		case thisYear:
			m.PublishedThisYear = true
		case lastYear:
			m.PublishedLastYear = true
		}
		if p.Year.Valid() {
			years[p.Year] = struct{}{}
		}
	}

	divisor := len(years)
	if divisor == 0 {
		divisor = fallbackDivisor
	}
	m.AvgPapersPerYear = average(m.TotalPapers, divisor)
	return m
}

// average rounds total/n half-up to one decimal.
func average(total, n int) float64 {
	avg, _ := decimal.NewFromInt(int64(total)).
		Div(decimal.NewFromInt(int64(n))).
		Round(avgPrecision).
		Float64()
	return avg
}
