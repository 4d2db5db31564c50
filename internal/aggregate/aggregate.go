// Package aggregate folds record lists into summary statistics.
//
// Every function here is pure and total: an empty input, or a zero
// denominator, yields 0 rather than an error or NaN.
package aggregate

import (
	"math"

	"github.com/Veraticus/crm-dashboard/internal/model"
)

// Count returns the number of items.
func Count[T any](items []T) int {
	return len(items)
}

// Sum totals value over items.
func Sum[T any](items []T, value func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += value(item)
	}
	return total
}

// Average returns the mean of value over items, or 0 for an empty list.
func Average[T any](items []T, value func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	return Sum(items, value) / float64(len(items))
}

// Rate returns numerator/denominator as a percentage, or 0 when the denominator is 0.
func Rate(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * 100
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// MetricOf returns an accessor for a named metric. Missing metrics read as 0.
func MetricOf[T model.Measured](name string) func(T) float64 {
	return func(r T) float64 {
		v, _ := r.Metric(name)
		return v
	}
}

// SumMetric totals a named metric.
func SumMetric[T model.Measured](items []T, metric string) float64 {
	return Sum(items, MetricOf[T](metric))
}

// AverageMetric averages a named metric.
func AverageMetric[T model.Measured](items []T, metric string) float64 {
	return Average(items, MetricOf[T](metric))
}

// RateMetric is the percentage of one metric total over another.
func RateMetric[T model.Measured](items []T, numerator, denominator string) float64 {
	return Rate(SumMetric(items, numerator), SumMetric(items, denominator))
}
