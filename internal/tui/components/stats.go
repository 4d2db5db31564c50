package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/crm-dashboard/internal/aggregate"
	"github.com/Veraticus/crm-dashboard/internal/page"
	"github.com/Veraticus/crm-dashboard/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 15

// StatsPanelModel displays a page's stat cards and the distribution of the
// filtered records over the active filter dimension.
type StatsPanelModel struct {
	theme       themes.Theme
	seriesLabel string
	stats       []page.Stat
	series      []aggregate.Bucket
	width       int
	compact     bool
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	return StatsPanelModel{theme: theme}
}

// SetStats replaces the stat cards.
func (m *StatsPanelModel) SetStats(stats []page.Stat) {
	m.stats = stats
}

// SetSeries replaces the distribution shown under the cards.
func (m *StatsPanelModel) SetSeries(label string, buckets []aggregate.Bucket) {
	m.seriesLabel = label
	m.series = buckets
}

// SetCompact switches between the single-line and card layouts.
func (m *StatsPanelModel) SetCompact(compact bool) {
	m.compact = compact
}

// Resize sets the panel width.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
}

// View renders the stats panel.
func (m StatsPanelModel) View() string {
	if len(m.stats) == 0 {
		return ""
	}
	if m.compact {
		return m.renderCompact()
	}

	sections := []string{m.renderCards()}
	if dist := m.renderDistribution(); dist != "" {
		sections = append(sections, dist)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m StatsPanelModel) renderCompact() string {
	parts := make([]string, len(m.stats))
	for i, s := range m.stats {
		parts[i] = m.theme.CardLabel.Render(s.Label+": ") + m.theme.CardValue.Render(s.Display)
	}
	return strings.Join(parts, m.theme.CardLabel.Render(" │ "))
}

// renderCards lays the cards out left to right, wrapping at the panel width.
func (m StatsPanelModel) renderCards() string {
	var (
		lines   []string
		current []string
		used    int
	)
	for _, s := range m.stats {
		card := m.theme.Card.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.theme.CardLabel.Render(s.Label),
			m.theme.CardValue.Render(s.Display),
		))
		w := lipgloss.Width(card)
		if m.width > 0 && used > 0 && used+w > m.width {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current, used = nil, 0
		}
		current = append(current, card)
		used += w
	}
	if len(current) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m StatsPanelModel) renderDistribution() string {
	if len(m.series) == 0 {
		return ""
	}

	maxCount := 0
	for _, b := range m.series {
		maxCount = max(maxCount, b.Count)
	}

	lines := make([]string, 0, len(m.series))
	for _, b := range m.series {
		barLen := 0
		if maxCount > 0 {
			barLen = b.Count * barWidth / maxCount
		}
		bar := strings.Repeat("█", barLen) + strings.Repeat("░", barWidth-barLen)
		lines = append(lines, fmt.Sprintf("%-12s %s %d",
			truncate(b.Label, 12),
			lipgloss.NewStyle().Foreground(m.theme.Primary).Render(bar),
			b.Count,
		))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Subtitle.Render("By "+m.seriesLabel),
		m.theme.Normal.Render(strings.Join(lines, "\n")),
	)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
