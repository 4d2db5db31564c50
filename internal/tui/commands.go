package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/crm-dashboard/internal/sheets"
	tea "github.com/charmbracelet/bubbletea"
)

const exportTimeout = 2 * time.Minute

// exportCurrent writes the page on screen, under its current filters, to the
// configured exporter.
func (m Model) exportCurrent() tea.Cmd {
	if m.config.Exporter == nil {
		return func() tea.Msg {
			return errorMsg{err: ErrNoExporter}
		}
	}

	ctx := m.ctx
	writer := m.config.Exporter
	p := m.current
	state := m.filter
	now := m.now

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, exportTimeout)
		defer cancel()

		report, err := sheets.NewReport(p, state, now())
		if err != nil {
			return exportDoneMsg{page: p.Name(), err: err}
		}
		if err := writer.Write(ctx, report); err != nil {
			return exportDoneMsg{page: p.Name(), err: fmt.Errorf("failed to export %s: %w", p.Name(), err)}
		}

		slog.Info("Exported page from dashboard", "page", p.Name(), "rows", len(report.Rows))
		return exportDoneMsg{page: p.Name(), rows: len(report.Rows)}
	}
}
