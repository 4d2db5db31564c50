// Package store holds the validated, immutable record lists owned by the dashboard pages.
package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/crm-dashboard/internal/model"
)

// Construction errors.
var (
	ErrEmptyID     = errors.New("record ID cannot be empty")
	ErrDuplicateID = errors.New("duplicate record ID")
	ErrEmptyKind   = errors.New("store kind cannot be empty")
)

// Store is an immutable list of records of one kind. IDs are unique within a store.
type Store[T model.Record] struct {
	byID    map[string]int
	kind    string
	records []T
}

// New validates records and builds a store. The input slice is copied.
func New[T model.Record](kind string, records []T) (*Store[T], error) {
	if strings.TrimSpace(kind) == "" {
		return nil, ErrEmptyKind
	}

	byID := make(map[string]int, len(records))
	for i, r := range records {
		id := r.RecordID()
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%s at index %d: %w", kind, i, ErrEmptyID)
		}
		if prev, ok := byID[id]; ok {
			return nil, fmt.Errorf("%s %q at index %d and %d: %w", kind, id, prev, i, ErrDuplicateID)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%s %q: %w", kind, id, err)
		}
		byID[id] = i
	}

	return &Store[T]{
		kind:    kind,
		records: slices.Clone(records),
		byID:    byID,
	}, nil
}

// Kind returns the record kind held by the store, e.g. "contact".
func (s *Store[T]) Kind() string {
	return s.kind
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	return len(s.records)
}

// All returns a copy of every record in definition order.
func (s *Store[T]) All() []T {
	return slices.Clone(s.records)
}

// Get looks up a record by ID.
func (s *Store[T]) Get(id string) (T, bool) {
	i, ok := s.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.records[i], true
}
