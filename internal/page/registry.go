package page

import (
	"fmt"

	"github.com/Veraticus/crm-dashboard/internal/nav"
)

var moduleLabels = []struct {
	id    string
	label string
}{
	{ModuleSales, "Sales"},
	{ModuleMarketing, "Marketing"},
	{ModuleSupport, "Support"},
}

// Registry is the ordered set of dashboard pages.
type Registry struct {
	byName map[string]Page
	pages  []Page
}

// NewRegistry builds a registry. Page names must be unique.
func NewRegistry(pages ...Page) (*Registry, error) {
	r := &Registry{byName: make(map[string]Page, len(pages))}
	for _, p := range pages {
		if _, dup := r.byName[p.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate page %q", ErrInvalidPage, p.Name())
		}
		r.byName[p.Name()] = p
		r.pages = append(r.pages, p)
	}
	return r, nil
}

// Get returns the page called name.
func (r *Registry) Get(name string) (Page, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, name)
	}
	return p, nil
}

// Pages returns every page in registration order.
func (r *Registry) Pages() []Page {
	out := make([]Page, len(r.pages))
	copy(out, r.pages)
	return out
}

// ByModule returns the pages of one module in registration order.
func (r *Registry) ByModule(module string) []Page {
	var out []Page
	for _, p := range r.pages {
		if p.Module() == module {
			out = append(out, p)
		}
	}
	return out
}

// NavTree builds the sidebar tree: one group per module that has pages.
func (r *Registry) NavTree() []nav.Group {
	var tree []nav.Group
	for _, m := range moduleLabels {
		pages := r.ByModule(m.id)
		if len(pages) == 0 {
			continue
		}
		g := nav.Group{ID: m.id, Label: m.label}
		for _, p := range pages {
			g.Items = append(g.Items, nav.Item{ID: p.Name(), Label: p.Title()})
		}
		tree = append(tree, g)
	}
	return tree
}
