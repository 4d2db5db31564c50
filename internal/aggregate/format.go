package aggregate

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders an unrounded currency total with grouping separators.
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", math.Abs(v))
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatPercent renders a percentage rounded to one decimal place.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", Round1(v))
}

// FormatCount renders a whole-number statistic with grouping separators.
func FormatCount(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// FormatDecimal renders v with one decimal place.
func FormatDecimal(v float64) string {
	return fmt.Sprintf("%.1f", Round1(v))
}
