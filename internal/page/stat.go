package page

import (
	"errors"
	"fmt"

	"github.com/Veraticus/crm-dashboard/internal/aggregate"
	"github.com/Veraticus/crm-dashboard/internal/model"
)

// Kind selects the aggregate a stat card shows.
type Kind int

// Stat kinds.
const (
	KindCount Kind = iota
	KindSum
	KindAverage
	KindRate
)

// Scope selects which record list a stat folds over.
type Scope int

// Stat scopes.
const (
	ScopeFiltered Scope = iota
	ScopeAll
)

// Format selects how a stat value is displayed.
type Format int

// Display formats.
const (
	FormatNumber Format = iota
	FormatCurrency
	FormatPercent
	FormatDecimal
)

var errMissingMetric = errors.New("stat needs a metric")

// StatDef describes one stat card.
type StatDef struct {
	Label string
	// Metric is summed or averaged; for KindRate it is the numerator.
	Metric string
	// Denominator is the metric the rate is taken over.
	Denominator string
	// Where selects the records a KindCount stat counts; nil counts all of them.
	Where  func(model.Record) bool
	Kind   Kind
	Scope  Scope
	Format Format
}

// Stat is a computed stat card.
type Stat struct {
	Label   string
	Display string
	Value   float64
}

func (d StatDef) validate() error {
	switch d.Kind {
	case KindSum, KindAverage:
		if d.Metric == "" {
			return fmt.Errorf("%w: %s", errMissingMetric, d.Label)
		}
	case KindRate:
		if d.Metric == "" || d.Denominator == "" {
			return fmt.Errorf("%w: %s needs numerator and denominator", errMissingMetric, d.Label)
		}
	}
	return nil
}

func compute[T model.Record](d StatDef, all, filtered []T) Stat {
	items := filtered
	if d.Scope == ScopeAll {
		items = all
	}

	var v float64
	switch d.Kind {
	case KindCount:
		v = float64(countWhere(items, d.Where))
	case KindSum:
		v = aggregate.SumMetric(items, d.Metric)
	case KindAverage:
		v = aggregate.AverageMetric(items, d.Metric)
	case KindRate:
		v = aggregate.Round1(aggregate.RateMetric(items, d.Metric, d.Denominator))
	}

	return Stat{Label: d.Label, Value: v, Display: format(d.Format, v)}
}

func countWhere[T model.Record](items []T, where func(model.Record) bool) int {
	if where == nil {
		return aggregate.Count(items)
	}
	n := 0
	for _, item := range items {
		if where(item) {
			n++
		}
	}
	return n
}

func format(f Format, v float64) string {
	switch f {
	case FormatCurrency:
		return aggregate.FormatCurrency(v)
	case FormatPercent:
		return aggregate.FormatPercent(v)
	case FormatDecimal:
		return aggregate.FormatDecimal(v)
	default:
		return aggregate.FormatCount(v)
	}
}

// DimensionIs returns a Where predicate matching records whose dimension equals value.
func DimensionIs(dimension, value string) func(model.Record) bool {
	return func(r model.Record) bool {
		v, ok := r.Dimension(dimension)
		return ok && v == value
	}
}
