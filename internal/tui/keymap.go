package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up           key.Binding
	Down         key.Binding
	FocusSidebar key.Binding
	FocusTable   key.Binding

	// Sidebar
	Select      key.Binding
	ToggleGroup key.Binding

	// Filtering
	Search        key.Binding
	NextDimension key.Binding
	NextValue     key.Binding
	PrevValue     key.Binding
	ClearFilters  key.Binding

	// Application
	Export      key.Binding
	ToggleStats key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		FocusSidebar: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "sidebar"),
		),
		FocusTable: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "records"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open page"),
		),
		ToggleGroup: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "expand/collapse"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextDimension: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "next filter"),
		),
		NextValue: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "cycle value"),
		),
		PrevValue: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "previous value"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),

		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		ToggleStats: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle stats"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextDimension, k.NextValue, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.FocusSidebar, k.FocusTable},
		{k.Select, k.ToggleGroup, k.Search},
		{k.NextDimension, k.NextValue, k.PrevValue, k.ClearFilters},
		{k.Export, k.ToggleStats, k.Help, k.Quit},
	}
}
