package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/crm-dashboard/internal/common"
	"github.com/Veraticus/crm-dashboard/internal/config"
	"github.com/Veraticus/crm-dashboard/internal/sheets"
	"github.com/Veraticus/crm-dashboard/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive dashboard.

Keys:
  ←/h →/l    switch between sidebar and records
  ↑/k ↓/j    move
  /          search (sidebar or records, whichever has focus)
  enter      open the page under the cursor
  space      expand or collapse a sidebar group
  f          choose the next filter dimension
  tab        cycle its value through all and each allowed value
  x          clear every filter
  e          export the current view
  s          toggle stat cards
  ?          help
  q          quit`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}

	cmd.Flags().String("page", "", "Page to open first (default: first page)")
	cmd.Flags().Bool("no-stats", false, "Hide the stat card panel")
	cmd.Flags().Bool("sheets", false, "Export to Google Sheets instead of CSV files")
	cmd.Flags().String("export-dir", ".", "Directory CSV exports are written to")

	_ = viper.BindPFlag("dashboard.export_dir", cmd.Flags().Lookup("export-dir"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	start, _ := cmd.Flags().GetString("page")
	if start != "" {
		if _, err := resolvePage(reg, start); err != nil {
			return err
		}
	}

	noStats, _ := cmd.Flags().GetBool("no-stats")
	useSheets, _ := cmd.Flags().GetBool("sheets")

	var exporter sheets.ReportWriter = &csvFileExporter{dir: config.ExpandPath(viper.GetString("dashboard.export_dir"))}
	if useSheets {
		w, err := newSheetsWriter(ctx)
		if err != nil {
			return err
		}
		exporter = w
	}

	slog.Debug("Starting dashboard", "pages", len(reg.Pages()), "start", start, "sheets", useSheets)

	// The terminal belongs to the dashboard until it exits.
	closeLog, err := redirectLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	return tui.Run(ctx,
		tui.WithRegistry(reg),
		tui.WithStartPage(start),
		tui.WithStats(!noStats),
		tui.WithExporter(exporter),
	)
}

// redirectLogging sends log output to dashboard.log beside the database at
// debug level and discards it otherwise. The returned func restores stderr.
func redirectLogging() (func(), error) {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return nil, err
	}
	format := viper.GetString("logging.format")
	restore := func() { _ = common.SetupLogger(level, format) }

	if level > slog.LevelDebug {
		return restore, common.SetupLoggerTo(io.Discard, level, format)
	}

	logPath := filepath.Join(filepath.Dir(config.DatabasePath()), "dashboard.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) // #nosec G304 - path derives from configured database path
	if err != nil {
		return nil, fmt.Errorf("failed to open dashboard log: %w", err)
	}
	if err := common.SetupLoggerTo(f, level, format); err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() {
		restore()
		_ = f.Close()
	}, nil
}

// csvFileExporter writes each report to its own timestamped CSV file.
type csvFileExporter struct {
	dir string
}

func (e *csvFileExporter) Write(ctx context.Context, report sheets.Report) error {
	if err := os.MkdirAll(e.dir, 0750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("crm-%s-%s.csv", report.Page, report.GeneratedAt.Format("20060102-150405"))
	path := filepath.Join(e.dir, strings.ReplaceAll(name, string(filepath.Separator), "_"))

	f, err := os.Create(path) // #nosec G304 - path is built from the export dir and page name
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := sheets.NewCSVWriter(f).Write(ctx, report); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	slog.Info("Exported report", "page", report.Page, "path", path, "at", report.GeneratedAt.Format(time.RFC3339))
	return nil
}
