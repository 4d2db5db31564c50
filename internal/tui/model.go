package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Veraticus/crm-dashboard/internal/nav"
	"github.com/Veraticus/crm-dashboard/internal/page"
	"github.com/Veraticus/crm-dashboard/internal/query"
	"github.com/Veraticus/crm-dashboard/internal/tui/components"
	"github.com/Veraticus/crm-dashboard/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Dashboard errors.
var (
	ErrNoPages    = errors.New("dashboard has no pages")
	ErrNoExporter = errors.New("no exporter configured")
)

// Focus is the pane receiving navigation keys.
type Focus int

const (
	FocusTable Focus = iota
	FocusSidebar
)

// Model holds the dashboard state.
type Model struct {
	ctx       context.Context
	current   page.Page
	lastError error
	registry  *page.Registry
	now       func() time.Time
	filter    query.FilterState
	status    string
	theme     themes.Theme
	result    page.Result
	help      help.Model
	keymap    KeyMap
	records   components.RecordTableModel
	sidebar   components.SidebarModel
	stats     components.StatsPanelModel
	config    Config
	dimension int
	width     int
	height    int
	focus     Focus
	quitting  bool
}

// New creates the dashboard model.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Registry == nil || len(cfg.Registry.Pages()) == 0 {
		return Model{}, ErrNoPages
	}

	start := cfg.StartPage
	if start == "" {
		start = cfg.Registry.Pages()[0].Name()
	}
	first, err := cfg.Registry.Get(start)
	if err != nil {
		return Model{}, err
	}

	tree := cfg.Registry.NavTree()
	group, _ := nav.GroupOf(tree, start)

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		ctx:      ctx,
		config:   cfg,
		registry: cfg.Registry,
		theme:    cfg.Theme,
		keymap:   DefaultKeyMap(),
		help:     h,
		now:      time.Now,
		width:    cfg.Width,
		height:   cfg.Height,
		records:  components.NewRecordTableModel(cfg.Theme),
		sidebar:  components.NewSidebarModel(tree, nav.NewState(start, group), cfg.Theme),
		stats:    components.NewStatsPanelModel(cfg.Theme),
	}
	m.switchPage(first)
	m.setFocus(FocusTable)
	m.handleResize()
	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.handleResize()

	case exportDoneMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.status = ""
		} else {
			m.lastError = nil
			m.status = fmt.Sprintf("Exported %d %s rows", msg.rows, msg.page)
		}

	case errorMsg:
		m.lastError = msg.err
	}

	return m, nil
}

// handleKey routes a key to the dashboard, or to the focused pane when the
// dashboard does not claim it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	// An active search input owns every other key.
	if m.sidebar.Searching() || m.records.Searching() {
		return m.delegate(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()
		return m, nil
	case key.Matches(msg, m.keymap.FocusSidebar):
		m.setFocus(FocusSidebar)
		return m, nil
	case key.Matches(msg, m.keymap.FocusTable):
		m.setFocus(FocusTable)
		return m, nil
	case key.Matches(msg, m.keymap.NextDimension):
		m.nextDimension()
		return m, nil
	case key.Matches(msg, m.keymap.NextValue):
		m.cycleValue(1)
		return m, nil
	case key.Matches(msg, m.keymap.PrevValue):
		m.cycleValue(-1)
		return m, nil
	case key.Matches(msg, m.keymap.ClearFilters):
		m.filter = query.NewFilterState(m.filter.Query)
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keymap.ToggleStats):
		m.config.ShowStats = !m.config.ShowStats
		m.handleResize()
		return m, nil
	case key.Matches(msg, m.keymap.Export):
		m.status = "Exporting " + m.current.Title() + "…"
		return m, m.exportCurrent()
	}

	return m.delegate(msg)
}

// delegate forwards a key to the focused pane and reacts to the state it changed.
func (m Model) delegate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.focus == FocusSidebar {
		m.sidebar, cmd = m.sidebar.Update(msg)
		if name := m.sidebar.State().Current; name != m.current.Name() {
			p, err := m.registry.Get(name)
			if err != nil {
				m.lastError = err
				return m, cmd
			}
			m.switchPage(p)
			m.setFocus(FocusTable)
		}
		return m, cmd
	}

	m.records, cmd = m.records.Update(msg)
	if q := m.records.Query(); q != m.filter.Query {
		m.filter = m.filter.WithQuery(q)
		m.refresh()
	}
	return m, cmd
}

// switchPage shows p with a fresh filter state.
func (m *Model) switchPage(p page.Page) {
	m.current = p
	m.filter = query.NewFilterState("")
	m.dimension = 0
	m.records.SetQuery("")
	m.sidebar.Navigate(p.Name())
	m.lastError = nil
	m.status = ""
	m.refresh()
}

// refresh re-evaluates the current page under the current filter state.
func (m *Model) refresh() {
	m.result = m.current.Evaluate(m.filter)
	m.records.SetResult(m.result)
	m.stats.SetStats(m.result.Stats)

	dims := m.current.Dimensions()
	if len(dims) == 0 {
		m.stats.SetSeries("", nil)
		return
	}
	d := dims[m.dimension]
	buckets, err := m.current.Series(m.filter, d.Name)
	if err != nil {
		m.lastError = err
		return
	}
	m.stats.SetSeries(d.Label, buckets)
}

func (m *Model) nextDimension() {
	dims := m.current.Dimensions()
	if len(dims) == 0 {
		return
	}
	m.dimension = (m.dimension + 1) % len(dims)
	m.refresh()
}

// cycleValue steps the active dimension through "all" followed by its allowed values.
func (m *Model) cycleValue(step int) {
	dims := m.current.Dimensions()
	if len(dims) == 0 {
		return
	}
	d := dims[m.dimension]
	values := append([]string{query.All}, d.Values...)

	idx := slices.Index(values, m.filter.Selected(d.Name))
	if idx < 0 {
		idx = 0
	}
	next := ((idx+step)%len(values) + len(values)) % len(values)

	m.filter = m.filter.With(d.Name, values[next])
	m.refresh()
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusSidebar {
		m.sidebar.Focus()
		m.records.Blur()
		return
	}
	m.sidebar.Blur()
	m.records.Focus()
}

// Current returns the page on screen.
func (m Model) Current() page.Page {
	return m.current
}

// Filter returns the filter state of the page on screen.
func (m Model) Filter() query.FilterState {
	return m.filter
}

// Result returns the last evaluation of the page on screen.
func (m Model) Result() page.Result {
	return m.result
}
