package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/crm-dashboard/internal/cli"
	"github.com/Veraticus/crm-dashboard/internal/config"
	"github.com/Veraticus/crm-dashboard/internal/query"
	"github.com/spf13/cobra"
)

func pagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List dashboard pages",
		Long: `List every dashboard page with its module, record count and the
dimensions it can be filtered by.`,
		Args: cobra.NoArgs,
		RunE: runPages,
	}
}

func runPages(cmd *cobra.Command, _ []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(reg.Pages()))
	for _, p := range reg.Pages() {
		res := p.Evaluate(query.NewFilterState(""))
		dims := make([]string, 0, len(p.Dimensions()))
		for _, d := range p.Dimensions() {
			dims = append(dims, d.Name)
		}
		rows = append(rows, []string{
			p.Name(),
			p.Title(),
			p.Module(),
			strconv.Itoa(res.Summary.Total),
			strings.Join(dims, ", "),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle("Dashboard pages"))
	fmt.Fprint(out, cli.RenderTable(
		[]string{"Page", "Title", "Module", "Records", "Filters"},
		[]int{12, 12, 11, 9, 24},
		rows,
	))

	source := "built-in sample data"
	if dir := config.DataDir(); dir != "" {
		source = dir
	}
	fmt.Fprintln(out, cli.SubtitleStyle.Render(cli.FolderIcon+"  Records from "+source))
	return nil
}
