// Package page binds a record store to its filter dimensions, table columns
// and stat cards, and evaluates a FilterState against it.
package page

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Veraticus/crm-dashboard/internal/aggregate"
	"github.com/Veraticus/crm-dashboard/internal/model"
	"github.com/Veraticus/crm-dashboard/internal/query"
	"github.com/Veraticus/crm-dashboard/internal/store"
)

// Page errors.
var (
	ErrUnknownPage      = errors.New("unknown page")
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrInvalidPage      = errors.New("invalid page definition")
)

// Modules group pages in the sidebar.
const (
	ModuleSales     = "sales"
	ModuleMarketing = "marketing"
	ModuleSupport   = "support"
)

// Column renders one table column of a record.
type Column[T any] struct {
	Value func(T) string
	Title string
	Width int
}

// Result is the output of evaluating a page: the visible rows and the derived statistics.
type Result struct {
	Summary aggregate.Summary
	Columns []string
	Widths  []int
	IDs     []string
	Rows    [][]string
	Stats   []Stat
	State   query.FilterState
}

// Page is the type-erased view of a dashboard page.
type Page interface {
	Name() string
	Title() string
	Module() string
	Kind() string
	Dimensions() []model.DimensionSpec
	Evaluate(state query.FilterState) Result
	Series(state query.FilterState, dimension string) ([]aggregate.Bucket, error)
	// SeriesTotal formats a bucket total. It reports false when the page's
	// series are counts only.
	SeriesTotal(v float64) (string, bool)
}

// Definition describes a page over records of type T.
type Definition[T model.Record] struct {
	Store      *store.Store[T]
	Name       string
	Title      string
	Module     string
	Dimensions []model.DimensionSpec
	Columns    []Column[T]
	Metrics    []string
	Stats      []StatDef
	// SeriesMetric is totalled per bucket by Series; empty means counts only.
	SeriesMetric string
	SeriesFormat Format
}

type typedPage[T model.Record] struct {
	def Definition[T]
}

// New validates a definition and returns it as a Page.
func New[T model.Record](def Definition[T]) (Page, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidPage)
	}
	if def.Store == nil {
		return nil, fmt.Errorf("%w: page %s has no store", ErrInvalidPage, def.Name)
	}
	if len(def.Columns) == 0 {
		return nil, fmt.Errorf("%w: page %s has no columns", ErrInvalidPage, def.Name)
	}
	for _, st := range def.Stats {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("%w: page %s: %w", ErrInvalidPage, def.Name, err)
		}
	}
	if def.Title == "" {
		def.Title = def.Name
	}
	return &typedPage[T]{def: def}, nil
}

// MustNew is New that panics on an invalid definition. For package-level page tables only.
func MustNew[T model.Record](def Definition[T]) Page {
	p, err := New(def)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *typedPage[T]) Name() string   { return p.def.Name }
func (p *typedPage[T]) Title() string  { return p.def.Title }
func (p *typedPage[T]) Module() string { return p.def.Module }
func (p *typedPage[T]) Kind() string   { return p.def.Store.Kind() }

func (p *typedPage[T]) Dimensions() []model.DimensionSpec {
	return slices.Clone(p.def.Dimensions)
}

// Evaluate runs the predicate over the full store, folds the aggregates and
// renders the visible rows.
func (p *typedPage[T]) Evaluate(state query.FilterState) Result {
	all := p.def.Store.All()
	filtered := query.Filter(all, state)

	res := Result{
		State:   state,
		Summary: aggregate.Summarize(all, filtered, p.def.Metrics...),
		Columns: make([]string, len(p.def.Columns)),
		Widths:  make([]int, len(p.def.Columns)),
		IDs:     make([]string, 0, len(filtered)),
		Rows:    make([][]string, 0, len(filtered)),
		Stats:   make([]Stat, 0, len(p.def.Stats)),
	}

	for i, col := range p.def.Columns {
		res.Columns[i] = col.Title
		res.Widths[i] = col.Width
	}

	for _, r := range filtered {
		row := make([]string, len(p.def.Columns))
		for i, col := range p.def.Columns {
			row[i] = col.Value(r)
		}
		res.IDs = append(res.IDs, r.RecordID())
		res.Rows = append(res.Rows, row)
	}

	for _, def := range p.def.Stats {
		res.Stats = append(res.Stats, compute(def, all, filtered))
	}

	return res
}

// Series returns the distribution of the filtered records over dimension,
// for a chart collaborator to render.
func (p *typedPage[T]) Series(state query.FilterState, dimension string) ([]aggregate.Bucket, error) {
	idx := slices.IndexFunc(p.def.Dimensions, func(d model.DimensionSpec) bool { return d.Name == dimension })
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s has no %q", ErrUnknownDimension, p.def.Name, dimension)
	}
	values := p.def.Dimensions[idx].Values
	filtered := query.Filter(p.def.Store.All(), state)
	if p.def.SeriesMetric == "" {
		return aggregate.CountBy(filtered, dimension, values), nil
	}
	return aggregate.SumBy(filtered, dimension, values, p.def.SeriesMetric), nil
}

func (p *typedPage[T]) SeriesTotal(v float64) (string, bool) {
	if p.def.SeriesMetric == "" {
		return "", false
	}
	return format(p.def.SeriesFormat, v), true
}
