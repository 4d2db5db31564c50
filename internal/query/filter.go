// Package query implements the free-text and categorical filter applied to
// every record list on the dashboard.
package query

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/Veraticus/crm-dashboard/internal/model"
)

// All is the filter value meaning "no constraint on this dimension".
const All = "all"

// ErrMalformedFilter is returned when a dimension=value pair cannot be parsed.
var ErrMalformedFilter = errors.New("malformed filter")

// FilterState is the transient search/filter state of one page view.
type FilterState struct {
	Filters map[string]string `json:"filters" yaml:"filters"`
	Query   string            `json:"query" yaml:"query"`
}

// Filterable is the capability set the predicate needs from a record.
type Filterable interface {
	model.Searchable
	model.Categorized
}

// NewFilterState returns a state with the given query and no categorical constraints.
func NewFilterState(query string) FilterState {
	return FilterState{Query: query, Filters: map[string]string{}}
}

// With returns a copy of f with dimension set to value. The receiver is not modified.
func (f FilterState) With(dimension, value string) FilterState {
	filters := make(map[string]string, len(f.Filters)+1)
	maps.Copy(filters, f.Filters)
	filters[dimension] = value
	return FilterState{Query: f.Query, Filters: filters}
}

// WithQuery returns a copy of f with a new query string.
func (f FilterState) WithQuery(query string) FilterState {
	return FilterState{Query: query, Filters: maps.Clone(f.Filters)}
}

// Selected returns the selected value for dimension, or All when unset.
func (f FilterState) Selected(dimension string) string {
	v, ok := f.Filters[dimension]
	if !ok || v == "" {
		return All
	}
	return v
}

// IsPermissive reports whether f lets every record through.
func (f FilterState) IsPermissive() bool {
	if f.Query != "" {
		return false
	}
	for dim := range f.Filters {
		if f.Selected(dim) != All {
			return false
		}
	}
	return true
}

// MatchText reports whether query is a case-insensitive substring of any
// field or tag. An empty query always matches. The query is not trimmed.
func MatchText(query string, fields, tags []string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// MatchCategories reports whether r satisfies every categorical selection.
// Values are compared exactly; a dimension r lacks never matches a concrete value.
func MatchCategories(r model.Categorized, filters map[string]string) bool {
	for dim, want := range filters {
		if want == "" || want == All {
			continue
		}
		got, ok := r.Dimension(dim)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Matches is the filter predicate: text match AND every categorical match.
func Matches[T Filterable](r T, f FilterState) bool {
	return MatchText(f.Query, r.SearchFields(), r.TagSet()) && MatchCategories(r, f.Filters)
}

// Filter returns the records that satisfy f, preserving order.
// The result is never nil.
func Filter[T Filterable](records []T, f FilterState) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if Matches(r, f) {
			out = append(out, r)
		}
	}
	return out
}

// ParseFilters parses "dimension=value" pairs as given on the command line.
func ParseFilters(pairs []string) (map[string]string, error) {
	filters := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		dim, value, ok := strings.Cut(pair, "=")
		dim = strings.TrimSpace(dim)
		if !ok || dim == "" {
			return nil, fmt.Errorf("%w: %q (want dimension=value)", ErrMalformedFilter, pair)
		}
		filters[dim] = value
	}
	return filters, nil
}
