package sheets

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/Veraticus/crm-dashboard/internal/aggregate"
	"github.com/Veraticus/crm-dashboard/internal/page"
	"github.com/Veraticus/crm-dashboard/internal/query"
)

// ReportWriter writes a page report somewhere.
type ReportWriter interface {
	Write(ctx context.Context, report Report) error
}

// Report is a page evaluation flattened for export.
type Report struct {
	GeneratedAt time.Time
	Filters     map[string]string
	Title       string
	Page        string
	Query       string
	Columns     []string
	Rows        [][]string
	Stats       []StatRow
	Series      []SeriesRow
}

// StatRow is one stat card.
type StatRow struct {
	Label   string
	Display string
	Value   float64
}

// SeriesRow is one bucket of a distribution over a dimension.
type SeriesRow struct {
	Dimension string
	Label     string
	Count     int
	Value     float64
}

// NewReport evaluates p under state and gathers its distribution over every
// dimension the page declares.
func NewReport(p page.Page, state query.FilterState, at time.Time) (Report, error) {
	res := p.Evaluate(state)

	r := Report{
		GeneratedAt: at,
		Title:       p.Title(),
		Page:        p.Name(),
		Query:       state.Query,
		Filters:     maps.Clone(state.Filters),
		Columns:     slices.Clone(res.Columns),
		Rows:        res.Rows,
		Stats:       make([]StatRow, 0, len(res.Stats)),
	}
	if r.Filters == nil {
		r.Filters = map[string]string{}
	}

	for _, s := range res.Stats {
		r.Stats = append(r.Stats, StatRow{Label: s.Label, Display: s.Display, Value: s.Value})
	}

	for _, d := range p.Dimensions() {
		buckets, err := p.Series(state, d.Name)
		if err != nil {
			return Report{}, err
		}
		r.Series = append(r.Series, seriesRows(d.Name, buckets)...)
	}

	return r, nil
}

func seriesRows(dimension string, buckets []aggregate.Bucket) []SeriesRow {
	rows := make([]SeriesRow, len(buckets))
	for i, b := range buckets {
		rows[i] = SeriesRow{Dimension: dimension, Label: b.Label, Count: b.Count, Value: b.Value}
	}
	return rows
}
