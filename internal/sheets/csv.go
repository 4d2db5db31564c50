package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVWriter writes a report as CSV in three blocks separated by blank
// records: stat cards, distribution series, then the filtered records.
type CSVWriter struct {
	out io.Writer
}

// NewCSVWriter returns a writer targeting out.
func NewCSVWriter(out io.Writer) *CSVWriter {
	return &CSVWriter{out: out}
}

// Write emits the report's stats, series and rows.
func (c *CSVWriter) Write(ctx context.Context, report Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := csv.NewWriter(c.out).WriteAll(csvRecords(report)); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// csvRecords lays the report out in the same order as the Sheets tab.
func csvRecords(r Report) [][]string {
	records := make([][]string, 0, 5+len(r.Stats)+len(r.Series)+len(r.Rows))

	records = append(records, []string{"Label", "Display"})
	for _, s := range r.Stats {
		records = append(records, []string{s.Label, s.Display})
	}

	records = append(records, []string{}, []string{"Dimension", "Label", "Count", "Value"})
	for _, s := range r.Series {
		records = append(records, []string{
			s.Dimension,
			s.Label,
			strconv.Itoa(s.Count),
			strconv.FormatFloat(s.Value, 'f', -1, 64),
		})
	}

	records = append(records, []string{}, r.Columns)
	return append(records, r.Rows...)
}

var _ ReportWriter = (*CSVWriter)(nil)
