package components

import (
	"testing"

	"github.com/Veraticus/crm-dashboard/internal/aggregate"
	"github.com/Veraticus/crm-dashboard/internal/page"
	"github.com/Veraticus/crm-dashboard/internal/tui/themes"
	"github.com/Veraticus/crm-dashboard/internal/tui/tuitest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult(ids ...string) page.Result {
	names := map[string]string{"C-1": "Acme Corp", "C-2": "Beta Inc", "C-3": "Gamma LLC"}
	res := page.Result{
		Columns: []string{"Company", "Status"},
		Widths:  []int{14, 10},
		IDs:     ids,
		Rows:    make([][]string, len(ids)),
		Summary: aggregate.Summary{Total: 3, Filtered: len(ids)},
	}
	for i, id := range ids {
		res.Rows[i] = []string{names[id], "active"}
	}
	return res
}

func newTestTable(res page.Result) RecordTableModel {
	m := NewRecordTableModel(themes.Default)
	m.Resize(80, 12)
	m.SetResult(res)
	return m
}

func sendTable(m RecordTableModel, msgs ...tea.Msg) RecordTableModel {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestRecordTableModel_SetResult(t *testing.T) {
	m := newTestTable(testResult("C-1", "C-2", "C-3"))

	assert.Equal(t, 3, m.Len())
	id, ok := m.SelectedID()
	require.True(t, ok)
	assert.Equal(t, "C-1", id)

	view := tuitest.StripANSI(m.View())
	assert.True(t, tuitest.ContainsInOrder(view, "Company", "Acme Corp", "Beta Inc", "Gamma LLC"))
	assert.Contains(t, view, "3 of 3 records")
}

func TestRecordTableModel_CursorClampsOnShrink(t *testing.T) {
	m := newTestTable(testResult("C-1", "C-2", "C-3"))
	m = sendTable(m, tuitest.KeyDown(), tuitest.KeyDown())

	id, _ := m.SelectedID()
	require.Equal(t, "C-3", id)

	m.SetResult(testResult("C-2"))
	id, ok := m.SelectedID()
	require.True(t, ok)
	assert.Equal(t, "C-2", id)
}

func TestRecordTableModel_Empty(t *testing.T) {
	m := newTestTable(testResult())

	_, ok := m.SelectedID()
	assert.False(t, ok)
	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "No records match the current filters")
	assert.Contains(t, view, "0 of 3 records")
}

func TestRecordTableModel_Search(t *testing.T) {
	tests := []struct {
		name          string
		keys          []tea.Msg
		wantQuery     string
		wantSearching bool
	}{
		{
			name:          "slash starts search",
			keys:          []tea.Msg{tuitest.KeyPress("/")},
			wantSearching: true,
		},
		{
			name:          "typed text is kept verbatim",
			keys:          append([]tea.Msg{tuitest.KeyPress("/")}, tuitest.NewInputSequence().Type(" Acme ").Messages()...),
			wantQuery:     " Acme ",
			wantSearching: true,
		},
		{
			name:      "enter keeps the query",
			keys:      append(append([]tea.Msg{tuitest.KeyPress("/")}, tuitest.NewInputSequence().Type("beta").Messages()...), tuitest.KeyEnter()),
			wantQuery: "beta",
		},
		{
			name: "esc while searching clears",
			keys: append(append([]tea.Msg{tuitest.KeyPress("/")}, tuitest.NewInputSequence().Type("beta").Messages()...), tuitest.KeyEsc()),
		},
		{
			name: "esc after search clears",
			keys: append(append([]tea.Msg{tuitest.KeyPress("/")}, tuitest.NewInputSequence().Type("beta").Messages()...), tuitest.KeyEnter(), tuitest.KeyEsc()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sendTable(newTestTable(testResult("C-1", "C-2")), tt.keys...)
			assert.Equal(t, tt.wantQuery, m.Query())
			assert.Equal(t, tt.wantSearching, m.Searching())
		})
	}
}

func TestRecordTableModel_SearchLineShown(t *testing.T) {
	m := newTestTable(testResult("C-1"))
	assert.NotContains(t, tuitest.StripANSI(m.View()), "🔍")

	m.SetQuery("acme")
	assert.Contains(t, tuitest.StripANSI(m.View()), "🔍 acme")
}
