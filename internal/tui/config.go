package tui

import (
	"github.com/Veraticus/crm-dashboard/internal/page"
	"github.com/Veraticus/crm-dashboard/internal/sheets"
	"github.com/Veraticus/crm-dashboard/internal/tui/themes"
)

// Config holds dashboard configuration.
type Config struct {
	Registry  *page.Registry
	Exporter  sheets.ReportWriter
	Theme     themes.Theme
	StartPage string
	Width     int
	Height    int
	ShowStats bool
	ShowHelp  bool
}

// Option is a functional option for configuring the dashboard.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Width:     120,
		Height:    40,
		ShowStats: true,
	}
}

// WithRegistry sets the pages the dashboard navigates between.
func WithRegistry(r *page.Registry) Option {
	return func(c *Config) {
		c.Registry = r
	}
}

// WithExporter enables the export key, writing the current view to w.
func WithExporter(w sheets.ReportWriter) Option {
	return func(c *Config) {
		c.Exporter = w
	}
}

// WithStartPage selects the page shown first. Defaults to the first registered page.
func WithStartPage(name string) Option {
	return func(c *Config) {
		c.StartPage = name
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithStats toggles the stat card panel.
func WithStats(show bool) Option {
	return func(c *Config) {
		c.ShowStats = show
	}
}

// WithHelp starts the dashboard with the full key help expanded.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
