package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth  = 26
	compactWidth  = 90
	headerHeight  = 3
	footerHeight  = 2
	statsHeight   = 12
	compactStatsH = 1
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Responsive layout based on terminal size
	if m.width < compactWidth {
		return m.renderCompactView()
	}
	return m.renderFullView()
}

// renderFullView shows the sidebar beside the stats and table.
func (m Model) renderFullView() string {
	sidebar := m.paneStyle(FocusSidebar).Render(m.sidebar.View())

	main := m.records.View()
	if m.config.ShowStats {
		main = lipgloss.JoinVertical(lipgloss.Left, m.stats.View(), "", main)
	}
	main = m.paneStyle(FocusTable).Render(main)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main),
		m.renderFooter(),
	)
}

// renderCompactView shows one pane at a time for narrow terminals.
func (m Model) renderCompactView() string {
	var body string
	if m.focus == FocusSidebar {
		body = m.paneStyle(FocusSidebar).Render(m.sidebar.View())
	} else {
		body = m.records.View()
		if m.config.ShowStats {
			body = lipgloss.JoinVertical(lipgloss.Left, m.stats.View(), body)
		}
		body = m.paneStyle(FocusTable).Render(body)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(fmt.Sprintf("📊 CRM Dashboard · %s", m.current.Title()))
	return lipgloss.JoinVertical(lipgloss.Left, title, m.renderFilterBar())
}

// renderFilterBar lists every dimension with its selection; the one that
// tab cycles is highlighted.
func (m Model) renderFilterBar() string {
	var parts []string
	for i, d := range m.current.Dimensions() {
		text := fmt.Sprintf("%s: %s", d.Label, m.filter.Selected(d.Name))
		if i == m.dimension {
			parts = append(parts, m.theme.Selected.Render(" "+text+" "))
		} else {
			parts = append(parts, m.theme.Subtitle.Render(" "+text+" "))
		}
	}
	if m.filter.Query != "" {
		parts = append(parts, m.theme.Subtitle.Render(fmt.Sprintf(" query: %q ", m.filter.Query)))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.lastError != nil:
		status = m.theme.StatusError.Render("✗ " + m.lastError.Error())
	case m.status != "":
		status = m.theme.StatusSuccess.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.theme.Help.Render(m.help.View(m.keymap)))
}

func (m Model) paneStyle(f Focus) lipgloss.Style {
	if m.focus == f {
		return m.theme.FocusedPane
	}
	return m.theme.Pane
}

// handleResize adjusts component sizes when the terminal or layout changes.
func (m *Model) handleResize() {
	// Account for pane borders (2) on each side.
	bodyHeight := max(m.height-headerHeight-footerHeight-2, 5)
	if m.help.ShowAll {
		bodyHeight = max(bodyHeight-len(m.keymap.FullHelp()[0]), 5)
	}

	mainWidth := m.width - 2
	if m.width >= compactWidth {
		m.sidebar.Resize(sidebarWidth, bodyHeight)
		mainWidth = m.width - sidebarWidth - 4
	} else {
		m.sidebar.Resize(m.width-2, bodyHeight)
	}

	tableHeight := bodyHeight
	if m.config.ShowStats {
		compact := m.width < compactWidth
		m.stats.SetCompact(compact)
		m.stats.Resize(mainWidth)
		if compact {
			tableHeight -= compactStatsH
		} else {
			tableHeight -= statsHeight
		}
	}
	m.records.Resize(mainWidth, max(tableHeight, 5))
}
