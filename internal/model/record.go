// Package model defines the CRM record types shown on the dashboard pages.
package model

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Validation errors shared by every record kind.
var (
	ErrInvalidCategory = errors.New("invalid categorical value")
	ErrNegativeMetric  = errors.New("metric cannot be negative")
	ErrInvalidMetric   = errors.New("metric must be a finite number")
)

// Dimension names used by the categorical filters.
const (
	DimStatus   = "status"
	DimTier     = "tier"
	DimType     = "type"
	DimStage    = "stage"
	DimPriority = "priority"
	DimChannel  = "channel"
	DimCategory = "category"
)

// Metric names used by the aggregate reducers.
const (
	MetricRevenue       = "revenue"
	MetricDeals         = "deals"
	MetricValue         = "value"
	MetricProbability   = "probability"
	MetricBudget        = "budget"
	MetricSpent         = "spent"
	MetricRecipients    = "recipients"
	MetricOpened        = "opened"
	MetricClicked       = "clicked"
	MetricConversions   = "conversions"
	MetricCommission    = "commission"
	MetricResponseHours = "response_hours"
	MetricSatisfaction  = "satisfaction"
)

// Identified is implemented by records with a stable identifier.
type Identified interface {
	RecordID() string
}

// Searchable exposes the free-text fields matched by a search query.
type Searchable interface {
	SearchFields() []string
	TagSet() []string
}

// Categorized exposes the record's value for a filter dimension.
// The boolean is false when the record has no such dimension.
type Categorized interface {
	Dimension(name string) (string, bool)
}

// Measured exposes numeric metric fields by name.
type Measured interface {
	Metric(name string) (float64, bool)
}

// Record is the full capability set every CRM record kind provides.
type Record interface {
	Identified
	Searchable
	Categorized
	Measured
	Validate() error
}

// DimensionSpec describes one categorical filter dimension and its closed set of values.
type DimensionSpec struct {
	Name   string
	Label  string
	Values []string
}

// Allows reports whether value belongs to the dimension's closed set.
func (d DimensionSpec) Allows(value string) bool {
	return slices.Contains(d.Values, value)
}

func dimension[T ~string](name, label string, values []T) DimensionSpec {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return DimensionSpec{Name: name, Label: label, Values: out}
}

// validateRecord checks every declared dimension against its closed set and
// every listed metric for being finite and non-negative.
func validateRecord(r interface {
	Categorized
	Measured
}, dims []DimensionSpec, metrics []string) error {
	for _, d := range dims {
		v, _ := r.Dimension(d.Name)
		if !d.Allows(v) {
			return fmt.Errorf("%w: %s %q", ErrInvalidCategory, d.Name, v)
		}
	}
	for _, name := range metrics {
		v, _ := r.Metric(name)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidMetric, name, v)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s = %v", ErrNegativeMetric, name, v)
		}
	}
	return nil
}
