package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/crm-dashboard/internal/aggregate"
	"github.com/Veraticus/crm-dashboard/internal/cli"
	"github.com/Veraticus/crm-dashboard/internal/common"
	"github.com/Veraticus/crm-dashboard/internal/model"
	"github.com/Veraticus/crm-dashboard/internal/page"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <page>",
		Short: "Show the stat cards of a page",
		Long: `Show the stat cards of a dashboard page under the given search and
filters, followed by the distribution of the matching records over each
filter dimension.

Examples:
  crm stats customers -f status=active
  crm stats tickets --by priority`,
		Args: cobra.ExactArgs(1),
		RunE: runStats,
	}

	addFilterFlags(cmd)
	cmd.Flags().StringSlice("by", nil, "Only show distributions over these dimensions")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	p, err := resolvePage(reg, args[0])
	if err != nil {
		return err
	}
	state, err := filterStateFromFlags(cmd, p)
	if err != nil {
		return err
	}

	res := p.Evaluate(state)
	out := cmd.OutOrStdout()

	var cards strings.Builder
	for _, s := range res.Stats {
		fmt.Fprintf(&cards, "%-18s %s\n", s.Label, cli.BoldStyle.Render(s.Display))
	}
	fmt.Fprintf(&cards, "\n%d of %d records (%.1f%%)", res.Summary.Filtered, res.Summary.Total, res.Summary.FilteredShare())
	fmt.Fprintln(out, cli.RenderBox(fmt.Sprintf("%s · %s", p.Title(), describeState(state)), cards.String()))

	by, _ := cmd.Flags().GetStringSlice("by")
	dims := p.Dimensions()
	if len(by) > 0 {
		dims = make([]model.DimensionSpec, 0, len(by))
		for _, name := range by {
			d, ok := findDimension(p.Dimensions(), name)
			if !ok {
				return common.NewUserError(
					fmt.Sprintf("Page %s has no dimension %q; use one of: %s", p.Name(), name, dimensionNames(p.Dimensions())),
					page.ErrUnknownDimension)
			}
			dims = append(dims, d)
		}
	}

	for _, d := range dims {
		buckets, err := p.Series(state, d.Name)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.FormatTitle("By "+d.Label))
		fmt.Fprint(out, renderSeries(p, buckets))
	}
	return nil
}

func findDimension(dims []model.DimensionSpec, name string) (model.DimensionSpec, bool) {
	for _, d := range dims {
		if d.Name == name {
			return d, true
		}
	}
	return model.DimensionSpec{}, false
}

// renderSeries tabulates buckets, with a Total column only when the page
// totals a metric per bucket.
func renderSeries(p page.Page, buckets []aggregate.Bucket) string {
	_, totals := p.SeriesTotal(0)

	headers := []string{"Value", "Count"}
	widths := []int{14, 7}
	if totals {
		headers = append(headers, "Total")
		widths = append(widths, 16)
	}

	rows := make([][]string, len(buckets))
	for i, b := range buckets {
		row := []string{b.Label, strconv.Itoa(b.Count)}
		if total, ok := p.SeriesTotal(b.Value); ok {
			row = append(row, total)
		}
		rows[i] = row
	}
	return cli.RenderTable(headers, widths, rows)
}
