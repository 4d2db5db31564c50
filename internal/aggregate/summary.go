package aggregate

import "github.com/Veraticus/crm-dashboard/internal/model"

// Summary is a derived, read-only snapshot of a page evaluation.
type Summary struct {
	Sums     map[string]float64
	Averages map[string]float64
	Total    int
	Filtered int
}

// Summarize computes counts over both lists and sum/average of each metric
// over the filtered subset.
func Summarize[T model.Measured](all, filtered []T, metrics ...string) Summary {
	s := Summary{
		Total:    Count(all),
		Filtered: Count(filtered),
		Sums:     make(map[string]float64, len(metrics)),
		Averages: make(map[string]float64, len(metrics)),
	}
	for _, m := range metrics {
		s.Sums[m] = SumMetric(filtered, m)
		s.Averages[m] = AverageMetric(filtered, m)
	}
	return s
}

// FilteredShare is the percentage of records visible under the current filter.
func (s Summary) FilteredShare() float64 {
	return Round1(Rate(float64(s.Filtered), float64(s.Total)))
}
