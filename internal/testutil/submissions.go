package testutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Veraticus/crm-dashboard/internal/model"
)

// SubmissionBuilder assembles submission rows for seeding a TestDB.
type SubmissionBuilder struct {
	t    *testing.T
	at   time.Time
	rows []model.Submission
}

// NewSubmissionBuilder starts an empty builder. Rows are stamped one minute
// apart starting at a fixed instant so ordering is deterministic.
func NewSubmissionBuilder(t *testing.T) SubmissionBuilder {
	t.Helper()
	return SubmissionBuilder{
		t:  t,
		at: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

// With appends a submission of kind whose payload is v encoded as JSON.
func (b SubmissionBuilder) With(id, kind string, v any) SubmissionBuilder {
	b.t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		b.t.Fatalf("failed to encode payload for %s: %v", id, err)
	}
	b.rows = append(append([]model.Submission(nil), b.rows...), model.Submission{
		ID:          id,
		Kind:        kind,
		Payload:     payload,
		SubmittedAt: b.at.Add(time.Duration(len(b.rows)) * time.Minute),
	})
	return b
}

// WithContact appends a minimal valid contact submission.
func (b SubmissionBuilder) WithContact(id string) SubmissionBuilder {
	b.t.Helper()
	return b.With(id, "contact", model.Contact{
		ID:     id,
		Name:   "Test Contact",
		Status: model.ContactActive,
		Tier:   model.TierStarter,
	})
}

// WithTicket appends a minimal valid ticket submission.
func (b SubmissionBuilder) WithTicket(id string) SubmissionBuilder {
	b.t.Helper()
	return b.With(id, "ticket", model.Ticket{
		ID:       id,
		Subject:  "Test Ticket",
		Status:   model.TicketOpen,
		Priority: model.PriorityLow,
		Category: model.TicketTechnical,
	})
}

// Build returns the accumulated rows.
func (b SubmissionBuilder) Build() []model.Submission {
	return append([]model.Submission(nil), b.rows...)
}
