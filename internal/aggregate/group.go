package aggregate

import "github.com/Veraticus/crm-dashboard/internal/model"

// Bucket is one label/value point of a distribution series.
type Bucket struct {
	Label string
	Count int
	Value float64
}

// CountBy counts items per value of dimension. Buckets follow the order of
// values; values with no items are kept with a zero count. Items whose value
// is not in values are ignored.
func CountBy[T model.Categorized](items []T, dimension string, values []string) []Bucket {
	return groupBy(items, dimension, values, func(T) float64 { return 0 })
}

// SumBy is CountBy that also totals metric per bucket.
func SumBy[T interface {
	model.Categorized
	model.Measured
}](items []T, dimension string, values []string, metric string) []Bucket {
	return groupBy(items, dimension, values, MetricOf[T](metric))
}

func groupBy[T model.Categorized](items []T, dimension string, values []string, value func(T) float64) []Bucket {
	buckets := make([]Bucket, len(values))
	index := make(map[string]int, len(values))
	for i, v := range values {
		buckets[i] = Bucket{Label: v}
		index[v] = i
	}

	for _, item := range items {
		v, ok := item.Dimension(dimension)
		if !ok {
			continue
		}
		i, ok := index[v]
		if !ok {
			continue
		}
		buckets[i].Count++
		buckets[i].Value += value(item)
	}

	return buckets
}
