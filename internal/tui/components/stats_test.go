package components

import (
	"strings"
	"testing"

	"github.com/Veraticus/crm-dashboard/internal/aggregate"
	"github.com/Veraticus/crm-dashboard/internal/page"
	"github.com/Veraticus/crm-dashboard/internal/tui/themes"
	"github.com/Veraticus/crm-dashboard/internal/tui/tuitest"
	"github.com/stretchr/testify/assert"
)

func testStats() []page.Stat {
	return []page.Stat{
		{Label: "Total Customers", Display: "8", Value: 8},
		{Label: "Active", Display: "4", Value: 4},
		{Label: "Total Revenue", Display: "$809,850.50", Value: 809850.5},
	}
}

func TestStatsPanelModel_Empty(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)
	assert.Empty(t, m.View())
}

func TestStatsPanelModel_Cards(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)
	m.SetStats(testStats())
	m.Resize(200)

	view := tuitest.StripANSI(m.View())
	assert.True(t, tuitest.ContainsInOrder(view, "Total Customers", "Active", "Total Revenue"))
	assert.Contains(t, view, "$809,850.50")
	assert.NotContains(t, view, "By ")
}

func TestStatsPanelModel_CardsWrap(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)
	m.SetStats(testStats())

	m.Resize(200)
	wide := strings.Count(m.View(), "\n")

	m.Resize(20)
	narrow := strings.Count(m.View(), "\n")

	assert.Greater(t, narrow, wide, "narrow panels stack cards")
}

func TestStatsPanelModel_Compact(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)
	m.SetStats(testStats())
	m.SetCompact(true)

	view := tuitest.StripANSI(m.View())
	assert.Equal(t, "Total Customers: 8 │ Active: 4 │ Total Revenue: $809,850.50", view)
}

func TestStatsPanelModel_Distribution(t *testing.T) {
	tests := []struct {
		name     string
		buckets  []aggregate.Bucket
		wantBars []string
	}{
		{
			name: "proportional bars",
			buckets: []aggregate.Bucket{
				{Label: "active", Count: 4},
				{Label: "prospect", Count: 2},
				{Label: "churned", Count: 0},
			},
			wantBars: []string{
				strings.Repeat("█", 15),
				strings.Repeat("█", 7) + strings.Repeat("░", 8),
				strings.Repeat("░", 15),
			},
		},
		{
			name: "all zero counts render empty bars",
			buckets: []aggregate.Bucket{
				{Label: "high", Count: 0},
				{Label: "low", Count: 0},
			},
			wantBars: []string{strings.Repeat("░", 15), strings.Repeat("░", 15)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStatsPanelModel(themes.Default)
			m.SetStats(testStats())
			m.SetSeries("Status", tt.buckets)

			view := tuitest.StripANSI(m.View())
			assert.Contains(t, view, "By Status")
			for i, bar := range tt.wantBars {
				assert.Contains(t, view, tt.buckets[i].Label+strings.Repeat(" ", 13-len(tt.buckets[i].Label))+bar)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 12))
	assert.Equal(t, "negotiation…", truncate("negotiations!", 12))
	assert.Equal(t, "n", truncate("negotiation", 1))
}
