package components

import (
	"fmt"

	"github.com/Veraticus/crm-dashboard/internal/page"
	"github.com/Veraticus/crm-dashboard/internal/tui/themes"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RecordTableModel shows a page's filtered rows with a search input above them.
type RecordTableModel struct {
	theme     themes.Theme
	ids       []string
	search    textinput.Model
	table     table.Model
	width     int
	height    int
	total     int
	searching bool
}

// NewRecordTableModel creates an empty record table.
func NewRecordTableModel(theme themes.Theme) RecordTableModel {
	ti := textinput.New()
	ti.Prompt = "🔍 "
	ti.Placeholder = "search records"
	ti.Cursor.SetMode(cursor.CursorStatic)

	t := table.New(table.WithFocused(true))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.Foreground).
		Background(theme.Primary).
		Bold(false)
	t.SetStyles(styles)

	// f and space are dashboard keys; keep paging on the dedicated keys only.
	t.KeyMap.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	t.KeyMap.PageUp = key.NewBinding(key.WithKeys("pgup"))

	return RecordTableModel{
		theme:  theme,
		search: ti,
		table:  t,
	}
}

// SetResult replaces the table contents with an evaluated page.
func (m *RecordTableModel) SetResult(res page.Result) {
	cols := make([]table.Column, len(res.Columns))
	for i, title := range res.Columns {
		width := lipgloss.Width(title)
		if i < len(res.Widths) && res.Widths[i] > width {
			width = res.Widths[i]
		}
		cols[i] = table.Column{Title: title, Width: width}
	}

	rows := make([]table.Row, len(res.Rows))
	for i, r := range res.Rows {
		rows[i] = table.Row(r)
	}

	// Rows must never be wider than the column set while it is swapped.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}

	m.ids = res.IDs
	m.total = res.Summary.Total
}

// Update handles key messages while the table has focus.
func (m RecordTableModel) Update(msg tea.Msg) (RecordTableModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			return m, nil
		case tea.KeyEsc:
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case "esc":
		m.search.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the search line, the table and a row count.
func (m RecordTableModel) View() string {
	var parts []string
	if m.searching || m.search.Value() != "" {
		parts = append(parts, m.search.View())
	}

	if len(m.ids) == 0 {
		parts = append(parts, m.theme.Subtitle.Render("No records match the current filters"))
	} else {
		parts = append(parts, m.table.View())
	}

	parts = append(parts, m.theme.Subtitle.Render(fmt.Sprintf("%d of %d records", len(m.ids), m.total)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Query returns the current search text, verbatim.
func (m RecordTableModel) Query() string {
	return m.search.Value()
}

// SetQuery replaces the search text.
func (m *RecordTableModel) SetQuery(q string) {
	m.search.SetValue(q)
}

// Searching reports whether the search input is capturing keys.
func (m RecordTableModel) Searching() bool {
	return m.searching
}

// SelectedID returns the ID of the record under the cursor.
func (m RecordTableModel) SelectedID() (string, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.ids) {
		return "", false
	}
	return m.ids[i], true
}

// Len is the number of visible rows.
func (m RecordTableModel) Len() int {
	return len(m.ids)
}

// Focus gives the table keyboard focus.
func (m *RecordTableModel) Focus() {
	m.table.Focus()
}

// Blur removes keyboard focus.
func (m *RecordTableModel) Blur() {
	m.table.Blur()
}

// Resize sets the table dimensions, leaving room for the search and count lines.
func (m *RecordTableModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = max(width-4, 1)
	m.table.SetWidth(width)
	m.table.SetHeight(max(height-2, 3))
}
