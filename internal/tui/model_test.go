package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/crm-dashboard/internal/fixtures"
	"github.com/Veraticus/crm-dashboard/internal/page"
	"github.com/Veraticus/crm-dashboard/internal/query"
	"github.com/Veraticus/crm-dashboard/internal/sheets"
	"github.com/Veraticus/crm-dashboard/internal/tui/tuitest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *page.Registry {
	t.Helper()
	catalog, err := fixtures.Default()
	require.NoError(t, err)
	reg, err := page.Default(catalog)
	require.NoError(t, err)
	return reg
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	opts = append([]Option{WithRegistry(testRegistry(t))}, opts...)
	m, err := New(context.Background(), opts...)
	require.NoError(t, err)
	return m
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func typed(text string) []tea.Msg {
	return tuitest.NewInputSequence().Type(text).Messages()
}

func TestNew(t *testing.T) {
	t.Run("defaults to the first page", func(t *testing.T) {
		m := newTestModel(t)
		assert.Equal(t, page.Customers, m.Current().Name())
		assert.True(t, m.Filter().IsPermissive())
		assert.Len(t, m.Result().Rows, 8)
		assert.Equal(t, FocusTable, m.focus)
		assert.Nil(t, m.Init())
	})

	t.Run("start page", func(t *testing.T) {
		m := newTestModel(t, WithStartPage(page.Tickets))
		assert.Equal(t, page.Tickets, m.Current().Name())
		assert.True(t, m.sidebar.State().IsOpen(page.ModuleSupport))
	})

	t.Run("unknown start page", func(t *testing.T) {
		_, err := New(context.Background(), WithRegistry(testRegistry(t)), WithStartPage("nope"))
		assert.ErrorIs(t, err, page.ErrUnknownPage)
	})

	t.Run("no registry", func(t *testing.T) {
		_, err := New(context.Background())
		assert.ErrorIs(t, err, ErrNoPages)
	})

	t.Run("empty registry", func(t *testing.T) {
		reg, err := page.NewRegistry()
		require.NoError(t, err)
		_, err = New(context.Background(), WithRegistry(reg))
		assert.ErrorIs(t, err, ErrNoPages)
	})
}

func TestModel_Search(t *testing.T) {
	m := newTestModel(t)

	m = send(m, tuitest.KeyPress("/"))
	require.True(t, m.records.Searching())

	m = send(m, typed("acme")...)
	assert.Equal(t, "acme", m.Filter().Query)
	assert.Equal(t, []string{"C-1001"}, m.Result().IDs)

	// Letters bound to dashboard actions are text while searching.
	m = send(m, typed(" q")...)
	assert.False(t, m.quitting)
	assert.Equal(t, "acme q", m.Filter().Query)
	assert.Empty(t, m.Result().IDs)

	m = send(m, tuitest.KeyBackspace(), tuitest.KeyBackspace(), tuitest.KeyEnter())
	assert.False(t, m.records.Searching())
	assert.Equal(t, "acme", m.Filter().Query)

	m = send(m, tuitest.KeyEsc())
	assert.Empty(t, m.Filter().Query)
	assert.Len(t, m.Result().IDs, 8)
}

func TestModel_FilterCycling(t *testing.T) {
	tests := []struct {
		name       string
		keys       []tea.Msg
		wantFilter map[string]string
		wantRows   int
	}{
		{
			name:       "tab selects the first status",
			keys:       []tea.Msg{tuitest.KeyTab()},
			wantFilter: map[string]string{"status": "active"},
			wantRows:   4,
		},
		{
			name:       "shift+tab wraps to the last status",
			keys:       []tea.Msg{tuitest.KeyShiftTab()},
			wantFilter: map[string]string{"status": "churned"},
			wantRows:   1,
		},
		{
			name:       "tab wraps back to all",
			keys:       []tea.Msg{tuitest.KeyTab(), tuitest.KeyTab(), tuitest.KeyTab(), tuitest.KeyTab(), tuitest.KeyTab()},
			wantFilter: map[string]string{"status": query.All},
			wantRows:   8,
		},
		{
			name:       "f moves to tier",
			keys:       []tea.Msg{tuitest.KeyPress("f"), tuitest.KeyTab()},
			wantFilter: map[string]string{"tier": "enterprise"},
		},
		{
			name:       "f wraps to the first dimension",
			keys:       []tea.Msg{tuitest.KeyPress("f"), tuitest.KeyPress("f"), tuitest.KeyTab()},
			wantFilter: map[string]string{"status": "active"},
			wantRows:   4,
		},
		{
			name:       "x clears every selection",
			keys:       []tea.Msg{tuitest.KeyTab(), tuitest.KeyPress("f"), tuitest.KeyTab(), tuitest.KeyPress("x")},
			wantFilter: map[string]string{},
			wantRows:   8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := send(newTestModel(t), tt.keys...)

			assert.Equal(t, tt.wantFilter, m.Filter().Filters)
			if tt.wantRows > 0 {
				assert.Len(t, m.Result().Rows, tt.wantRows)
			}
			assert.Equal(t, m.Result().Summary.Filtered, len(m.Result().Rows))
		})
	}
}

func TestModel_StatsFollowFilter(t *testing.T) {
	m := send(newTestModel(t), tuitest.KeyTab())

	stats := map[string]string{}
	for _, s := range m.Result().Stats {
		stats[s.Label] = s.Display
	}
	assert.Equal(t, "8", stats["Total Customers"])
	assert.Equal(t, "$808,850.50", stats["Total Revenue"])
}

func TestModel_SidebarNavigation(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tuitest.KeyTab())
	require.False(t, m.Filter().IsPermissive())

	m = send(m, tuitest.KeyPress("h"))
	assert.Equal(t, FocusSidebar, m.focus)

	// Customers -> Pipeline
	m = send(m, tuitest.KeyDown(), tuitest.KeyEnter())
	assert.Equal(t, page.Pipeline, m.Current().Name())
	assert.Equal(t, FocusTable, m.focus)
	assert.True(t, m.Filter().IsPermissive(), "filters reset on navigation")
	assert.Equal(t, 0, m.dimension)
	assert.Equal(t, page.Pipeline, m.sidebar.State().Current)
}

func TestModel_SidebarToggleAndOpen(t *testing.T) {
	m := newTestModel(t)

	// Collapse Sales, then open Marketing and pick Campaigns.
	m = send(m, tuitest.KeyPress("h"), tuitest.KeySpace())
	assert.False(t, m.sidebar.State().IsOpen(page.ModuleSales))
	assert.Equal(t, page.Customers, m.Current().Name())

	m = send(m, tuitest.KeyDown(), tuitest.KeyEnter(), tuitest.KeyDown(), tuitest.KeyEnter())
	assert.Equal(t, page.Campaigns, m.Current().Name())
}

func TestModel_SidebarSearch(t *testing.T) {
	m := newTestModel(t)

	m = send(m, tuitest.KeyPress("h"), tuitest.KeyPress("/"))
	m = send(m, typed("tick")...)
	// Still on customers while typing; q and f are text here.
	assert.Equal(t, page.Customers, m.Current().Name())
	assert.Equal(t, "tick", m.sidebar.State().Search)

	m = send(m, tuitest.KeyEnter(), tuitest.KeyEnter())
	assert.Equal(t, page.Tickets, m.Current().Name())
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.Msg
	}{
		{name: "q", keys: []tea.Msg{tuitest.KeyPress("q")}},
		{name: "ctrl+c while searching", keys: []tea.Msg{tuitest.KeyPress("/"), tea.KeyMsg{Type: tea.KeyCtrlC}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			var cmd tea.Cmd
			for _, msg := range tt.keys {
				var updated tea.Model
				updated, cmd = m.Update(msg)
				m = updated.(Model)
			}
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_Export(t *testing.T) {
	t.Run("writes the current view", func(t *testing.T) {
		writer := sheets.NewMockWriter()
		m := newTestModel(t, WithExporter(writer))
		m = send(m, tuitest.KeyTab())

		updated, cmd := m.Update(tuitest.KeyPress("e"))
		m = updated.(Model)
		require.NotNil(t, cmd)

		m = send(m, cmd())
		require.NoError(t, m.lastError)
		assert.Equal(t, "Exported 4 customers rows", m.status)

		calls := writer.GetWriteCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, page.Customers, calls[0].Report.Page)
		assert.Len(t, calls[0].Report.Rows, 4)
	})

	t.Run("writer failure", func(t *testing.T) {
		writer := sheets.NewMockWriter()
		boom := errors.New("quota exceeded")
		writer.SetWriteError(boom)
		m := newTestModel(t, WithExporter(writer))

		_, cmd := m.Update(tuitest.KeyPress("e"))
		m = send(m, cmd())
		assert.ErrorIs(t, m.lastError, boom)
	})

	t.Run("no exporter", func(t *testing.T) {
		m := newTestModel(t)
		_, cmd := m.Update(tuitest.KeyPress("e"))
		m = send(m, cmd())
		assert.ErrorIs(t, m.lastError, ErrNoExporter)
	})
}

func TestModel_View(t *testing.T) {
	t.Run("full layout", func(t *testing.T) {
		m := send(newTestModel(t), tuitest.WindowSize(140, 45))
		view := tuitest.StripANSI(m.View())

		assert.Contains(t, view, "CRM Dashboard · Customers")
		assert.Contains(t, view, "Navigation")
		assert.Contains(t, view, "Total Revenue")
		assert.Contains(t, view, "Sarah Chen")
		assert.Contains(t, view, "8 of 8 records")
		assert.True(t, tuitest.ContainsInOrder(view, "Status: all", "Tier: all"))
	})

	t.Run("compact layout hides the sidebar behind the table", func(t *testing.T) {
		m := send(newTestModel(t), tuitest.WindowSize(70, 30))
		view := tuitest.StripANSI(m.View())
		assert.NotContains(t, view, "Navigation")
		assert.Contains(t, view, "Total Customers: 8")

		m = send(m, tuitest.KeyPress("h"))
		assert.Contains(t, tuitest.StripANSI(m.View()), "Navigation")
	})

	t.Run("no matches", func(t *testing.T) {
		m := send(newTestModel(t), tuitest.WindowSize(140, 45), tuitest.KeyPress("/"))
		m = send(m, typed("zzzz")...)
		view := tuitest.StripANSI(m.View())
		assert.Contains(t, view, "No records match the current filters")
		assert.Contains(t, view, "0 of 8 records")
		assert.Contains(t, view, `query: "zzzz"`)
	})

	t.Run("stats toggle", func(t *testing.T) {
		m := send(newTestModel(t), tuitest.WindowSize(140, 45), tuitest.KeyPress("s"))
		assert.NotContains(t, tuitest.StripANSI(m.View()), "Total Revenue")
	})
}
