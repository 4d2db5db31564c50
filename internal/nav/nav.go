// Package nav tracks the sidebar navigation state: which groups are
// expanded, which item is current and the sidebar search text.
package nav

import (
	"maps"
	"slices"

	"github.com/Veraticus/crm-dashboard/internal/query"
)

// Item is a navigable entry in the sidebar.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Group is a collapsible set of items.
type Group struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Items []Item `json:"items"`
}

// State is the sidebar view state. It is a value: every transition returns
// a new State and leaves the receiver untouched.
type State struct {
	Open    map[string]bool `json:"open"`
	Current string          `json:"current"`
	Search  string          `json:"search"`
}

// NewState returns a state with current selected and the given groups open.
func NewState(current string, open ...string) State {
	s := State{Current: current, Open: make(map[string]bool, len(open))}
	for _, id := range open {
		s.Open[id] = true
	}
	return s
}

// Toggle removes groupID from the open set if present, otherwise adds it.
func (s State) Toggle(groupID string) State {
	next := s.clone()
	if next.Open[groupID] {
		delete(next.Open, groupID)
	} else {
		next.Open[groupID] = true
	}
	return next
}

// IsOpen reports whether groupID is expanded.
func (s State) IsOpen(groupID string) bool {
	return s.Open[groupID]
}

// OpenGroups returns the expanded group IDs in sorted order.
func (s State) OpenGroups() []string {
	return slices.Sorted(maps.Keys(s.Open))
}

// Navigate makes itemID the current view.
func (s State) Navigate(itemID string) State {
	next := s.clone()
	next.Current = itemID
	return next
}

// IsCurrent reports whether itemID is the current view.
func (s State) IsCurrent(itemID string) bool {
	return s.Current == itemID
}

// WithSearch sets the sidebar search text.
func (s State) WithSearch(search string) State {
	next := s.clone()
	next.Search = search
	return next
}

func (s State) clone() State {
	open := make(map[string]bool, len(s.Open))
	maps.Copy(open, s.Open)
	return State{Open: open, Current: s.Current, Search: s.Search}
}

// VisibleGroup is a group as it should be rendered under a State.
type VisibleGroup struct {
	Group
	Expanded bool
}

// Visible applies the state to a navigation tree. Without a search every
// group is shown and Expanded follows the open set. With a search, items
// are filtered by label using the same text rule as record search, groups
// left empty are hidden and the rest are shown expanded.
func Visible(tree []Group, s State) []VisibleGroup {
	out := make([]VisibleGroup, 0, len(tree))
	for _, g := range tree {
		if s.Search == "" {
			out = append(out, VisibleGroup{Group: g, Expanded: s.IsOpen(g.ID)})
			continue
		}

		var items []Item
		for _, item := range g.Items {
			if query.MatchText(s.Search, []string{item.Label}, nil) {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		filtered := g
		filtered.Items = items
		out = append(out, VisibleGroup{Group: filtered, Expanded: true})
	}
	return out
}

// Flatten lists the items a user can reach with the cursor: every item of an
// expanded group, in tree order.
func Flatten(groups []VisibleGroup) []Item {
	var items []Item
	for _, g := range groups {
		if g.Expanded {
			items = append(items, g.Items...)
		}
	}
	return items
}

// GroupOf returns the ID of the group containing itemID.
func GroupOf(tree []Group, itemID string) (string, bool) {
	for _, g := range tree {
		for _, item := range g.Items {
			if item.ID == itemID {
				return g.ID, true
			}
		}
	}
	return "", false
}
