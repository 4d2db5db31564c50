package components

import (
	"testing"

	"github.com/Veraticus/crm-dashboard/internal/nav"
	"github.com/Veraticus/crm-dashboard/internal/tui/themes"
	"github.com/Veraticus/crm-dashboard/internal/tui/tuitest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() []nav.Group {
	return []nav.Group{
		{ID: "sales", Label: "Sales", Items: []nav.Item{
			{ID: "customers", Label: "Customers"},
			{ID: "pipeline", Label: "Pipeline"},
		}},
		{ID: "support", Label: "Support", Items: []nav.Item{
			{ID: "tickets", Label: "Tickets"},
		}},
	}
}

func sendKeys(m SidebarModel, msgs ...tea.Msg) SidebarModel {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func typeText(text string) []tea.Msg {
	return tuitest.NewInputSequence().Type(text).Messages()
}

func TestNewSidebarModel(t *testing.T) {
	m := NewSidebarModel(testTree(), nav.NewState("pipeline", "sales"), themes.Default)

	rows := m.rows()
	require.Len(t, rows, 4)
	assert.True(t, rows[0].header)
	assert.Equal(t, "pipeline", rows[m.cursor].item.ID)
	assert.False(t, m.Searching())
}

func TestSidebarModel_Navigate(t *testing.T) {
	m := NewSidebarModel(testTree(), nav.NewState("customers", "sales"), themes.Default)

	m = sendKeys(m, tuitest.KeyDown(), tuitest.KeyEnter())
	assert.Equal(t, "pipeline", m.State().Current)

	// Cursor stops at the last row.
	m = sendKeys(m, tuitest.KeyDown(), tuitest.KeyDown(), tuitest.KeyDown())
	assert.Equal(t, len(m.rows())-1, m.cursor)
}

func TestSidebarModel_Toggle(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.Msg
		wantOpen []string
		wantRows int
	}{
		{
			name:     "space on item collapses its group",
			keys:     []tea.Msg{tuitest.KeySpace()},
			wantOpen: nil,
			wantRows: 2,
		},
		{
			name:     "enter on header expands it",
			keys:     []tea.Msg{tuitest.KeyDown(), tuitest.KeyDown(), tuitest.KeyDown(), tuitest.KeyEnter()},
			wantOpen: []string{"sales", "support"},
			wantRows: 5,
		},
		{
			name:     "space twice restores the group",
			keys:     []tea.Msg{tuitest.KeySpace(), tuitest.KeySpace()},
			wantOpen: []string{"sales"},
			wantRows: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSidebarModel(testTree(), nav.NewState("customers", "sales"), themes.Default)
			m = sendKeys(m, tt.keys...)

			assert.Equal(t, tt.wantOpen, m.State().OpenGroups())
			assert.Len(t, m.rows(), tt.wantRows)
			assert.True(t, m.rows()[m.cursor].header, "cursor should rest on the toggled header")
		})
	}
}

func TestSidebarModel_Search(t *testing.T) {
	m := NewSidebarModel(testTree(), nav.NewState("customers"), themes.Default)

	m = sendKeys(m, tuitest.KeyPress("/"))
	require.True(t, m.Searching())

	m = sendKeys(m, typeText("tick")...)
	assert.Equal(t, "tick", m.State().Search)

	rows := m.rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "support", rows[0].group)
	assert.True(t, rows[0].expanded, "search expands matching groups")

	m = sendKeys(m, tuitest.KeyEnter())
	assert.False(t, m.Searching())
	assert.Equal(t, "tickets", m.rows()[m.cursor].item.ID)

	m = sendKeys(m, tuitest.KeyEnter())
	assert.Equal(t, "tickets", m.State().Current)
}

func TestSidebarModel_SearchNoMatch(t *testing.T) {
	m := NewSidebarModel(testTree(), nav.NewState("customers", "sales"), themes.Default)
	m.Resize(30, 20)

	m = sendKeys(m, tuitest.KeyPress("/"))
	m = sendKeys(m, typeText("zzz")...)
	assert.Empty(t, m.rows())
	assert.Contains(t, tuitest.StripANSI(m.View()), "No matching pages")

	// Keys on an empty tree are harmless.
	m = sendKeys(m, tuitest.KeyEnter(), tuitest.KeySpace(), tuitest.KeyEnter())
	assert.Equal(t, "customers", m.State().Current)
}

func TestSidebarModel_EscClearsSearch(t *testing.T) {
	m := NewSidebarModel(testTree(), nav.NewState("customers", "sales"), themes.Default)

	m = sendKeys(m, tuitest.KeyPress("/"))
	m = sendKeys(m, typeText("pipe")...)
	m = sendKeys(m, tuitest.KeyEsc())

	assert.False(t, m.Searching())
	assert.Empty(t, m.State().Search)
	assert.Len(t, m.rows(), 4)
	assert.Equal(t, "customers", m.rows()[m.cursor].item.ID)
}

func TestSidebarModel_View(t *testing.T) {
	m := NewSidebarModel(testTree(), nav.NewState("customers", "sales"), themes.Default)
	m.Focus()
	m.Resize(30, 20)

	view := tuitest.StripANSI(m.View())
	assert.True(t, tuitest.ContainsInOrder(view, "Navigation", "▾", "Sales", "Customers", "Pipeline", "▸", "Support"))
	assert.NotContains(t, view, "Tickets")
	assert.Contains(t, view, "›")
}

func TestSidebarModel_NavigateOpensGroup(t *testing.T) {
	m := NewSidebarModel(testTree(), nav.NewState("customers", "sales"), themes.Default)

	m.Navigate("tickets")
	assert.True(t, m.State().IsOpen("support"))
	assert.Equal(t, "tickets", m.rows()[m.cursor].item.ID)
}
