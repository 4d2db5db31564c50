// Package main runs the dashboard over the embedded sample data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/crm-dashboard/internal/fixtures"
	"github.com/Veraticus/crm-dashboard/internal/page"
	"github.com/Veraticus/crm-dashboard/internal/sheets"
	"github.com/Veraticus/crm-dashboard/internal/tui"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	catalog, err := fixtures.Default()
	if err != nil {
		return err
	}
	registry, err := page.Default(catalog)
	if err != nil {
		return err
	}

	// Exports are recorded in memory only.
	return tui.Run(context.Background(),
		tui.WithRegistry(registry),
		tui.WithExporter(sheets.NewMockWriter()),
		tui.WithSize(120, 40),
	)
}
