package components

import (
	"strings"

	"github.com/Veraticus/crm-dashboard/internal/nav"
	"github.com/Veraticus/crm-dashboard/internal/tui/themes"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SidebarModel renders the page tree and owns its navigation state.
type SidebarModel struct {
	theme     themes.Theme
	state     nav.State
	tree      []nav.Group
	search    textinput.Model
	cursor    int
	width     int
	height    int
	searching bool
	focused   bool
}

type sidebarRow struct {
	item     nav.Item
	group    string
	label    string
	header   bool
	expanded bool
}

// NewSidebarModel creates a sidebar over tree starting from state.
func NewSidebarModel(tree []nav.Group, state nav.State, theme themes.Theme) SidebarModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search pages"
	ti.Cursor.SetMode(cursor.CursorStatic)

	m := SidebarModel{
		theme:  theme,
		state:  state,
		tree:   tree,
		search: ti,
	}
	m.cursor = m.currentRow()
	return m
}

// Update handles key messages while the sidebar has focus.
func (m SidebarModel) Update(msg tea.Msg) (SidebarModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.searching {
		return m.updateSearch(keyMsg)
	}

	rows := m.rows()
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case " ":
		if m.cursor < len(rows) {
			m.toggle(rows[m.cursor].group)
		}
	case "enter":
		if m.cursor < len(rows) {
			row := rows[m.cursor]
			if row.header {
				m.toggle(row.group)
			} else {
				m.state = m.state.Navigate(row.item.ID)
			}
		}
	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case "esc":
		m.clearSearch()
	}
	return m, nil
}

func (m SidebarModel) updateSearch(msg tea.KeyMsg) (SidebarModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.cursor = m.firstItemRow()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.clearSearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.state = m.state.WithSearch(m.search.Value())
	m.clampCursor()
	return m, cmd
}

// toggle flips a group and parks the cursor on its header so it stays visible.
func (m *SidebarModel) toggle(group string) {
	m.state = m.state.Toggle(group)
	for i, row := range m.rows() {
		if row.header && row.group == group {
			m.cursor = i
			return
		}
	}
}

func (m *SidebarModel) clearSearch() {
	m.search.SetValue("")
	m.state = m.state.WithSearch("")
	m.cursor = m.currentRow()
}

func (m *SidebarModel) clampCursor() {
	if n := len(m.rows()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m SidebarModel) rows() []sidebarRow {
	var rows []sidebarRow
	for _, g := range nav.Visible(m.tree, m.state) {
		rows = append(rows, sidebarRow{
			group:    g.ID,
			label:    g.Label,
			header:   true,
			expanded: g.Expanded,
		})
		if !g.Expanded {
			continue
		}
		for _, item := range g.Items {
			rows = append(rows, sidebarRow{group: g.ID, item: item, label: item.Label})
		}
	}
	return rows
}

func (m SidebarModel) currentRow() int {
	for i, row := range m.rows() {
		if !row.header && m.state.IsCurrent(row.item.ID) {
			return i
		}
	}
	return 0
}

func (m SidebarModel) firstItemRow() int {
	for i, row := range m.rows() {
		if !row.header {
			return i
		}
	}
	return 0
}

// View renders the sidebar.
func (m SidebarModel) View() string {
	lines := []string{m.theme.Title.Render("Navigation")}
	if m.searching || m.state.Search != "" {
		lines = append(lines, m.search.View())
	}
	lines = append(lines, "")

	rows := m.rows()
	if len(rows) == 0 {
		lines = append(lines, m.theme.Subtitle.Render("No matching pages"))
	}
	for i, row := range rows {
		lines = append(lines, m.renderRow(row, i == m.cursor && m.focused))
	}

	style := lipgloss.NewStyle()
	if m.width > 0 {
		style = style.Width(m.width)
	}
	if m.height > 0 {
		style = style.MaxHeight(m.height)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m SidebarModel) renderRow(row sidebarRow, atCursor bool) string {
	marker := "  "
	if atCursor {
		marker = "› "
	}

	if row.header {
		arrow := "▸"
		if row.expanded {
			arrow = "▾"
		}
		text := marker + arrow + " " + themes.ModuleIcon(row.group) + " " + row.label
		if atCursor {
			return m.theme.Highlighted.Render(text)
		}
		return m.theme.Bold.Render(text)
	}

	text := marker + "    " + row.label
	switch {
	case m.state.IsCurrent(row.item.ID):
		return m.theme.Selected.Render(text)
	case atCursor:
		return m.theme.Highlighted.Render(text)
	default:
		return m.theme.Normal.Render(text)
	}
}

// State returns the navigation state.
func (m SidebarModel) State() nav.State {
	return m.state
}

// Searching reports whether the search input is capturing keys.
func (m SidebarModel) Searching() bool {
	return m.searching
}

// Navigate makes itemID current and expands its group.
func (m *SidebarModel) Navigate(itemID string) {
	m.state = m.state.Navigate(itemID)
	if group, ok := nav.GroupOf(m.tree, itemID); ok && !m.state.IsOpen(group) {
		m.state = m.state.Toggle(group)
	}
	m.cursor = m.currentRow()
}

// Focus gives the sidebar keyboard focus.
func (m *SidebarModel) Focus() {
	m.focused = true
}

// Blur removes keyboard focus.
func (m *SidebarModel) Blur() {
	m.focused = false
}

// Resize sets the sidebar dimensions.
func (m *SidebarModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = max(width-4, 1)
}
