package main

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/crm-dashboard/internal/cli"
	"github.com/Veraticus/crm-dashboard/internal/common"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <page>",
		Short: "List the records of a page",
		Long: `List the records of a dashboard page that match the given search and
filters.

Examples:
  crm list customers -q acme
  crm list pipeline -f stage=proposal -f priority=high`,
		Args: cobra.ExactArgs(1),
		RunE: runList,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("format", "table", "Output format (table, json)")

	return cmd
}

type listedRecord struct {
	Fields map[string]string `json:"fields"`
	ID     string            `json:"id"`
}

func runList(cmd *cobra.Command, args []string) error {
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

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table":
		fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s (%s)", p.Title(), describeState(state))))
		if len(res.Rows) == 0 {
			fmt.Fprintln(out, cli.FormatInfo("No records match"))
		} else {
			fmt.Fprint(out, cli.RenderTable(res.Columns, res.Widths, res.Rows))
		}
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%d of %d records", res.Summary.Filtered, res.Summary.Total)))
		return nil

	case "json":
		records := make([]listedRecord, len(res.Rows))
		for i, row := range res.Rows {
			fields := make(map[string]string, len(row))
			for j, v := range row {
				fields[res.Columns[j]] = v
			}
			records[i] = listedRecord{ID: res.IDs[i], Fields: fields}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)

	default:
		return common.NewUserError(fmt.Sprintf("Unknown format %q; use table or json", format), nil)
	}
}
