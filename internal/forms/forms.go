// Package forms is the boundary between the create/edit forms and whatever
// consumes their payloads. The default submitter logs and discards; the
// store-backed one records each payload for later review.
package forms

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/crm-dashboard/internal/common"
	"github.com/Veraticus/crm-dashboard/internal/model"
)

// Submission is a form payload handed to a Submitter.
type Submission struct {
	Payload model.Record
	Kind    string
}

// Result reports what happened to a submission.
type Result struct {
	SubmittedAt time.Time
	ID          string
	Persisted   bool
}

// Submitter accepts form submissions.
type Submitter interface {
	Submit(ctx context.Context, s Submission) (Result, error)
}

// Repository is the persistence a StoreSubmitter writes to.
type Repository interface {
	SaveSubmission(ctx context.Context, submission *model.Submission) error
}

func validate(s Submission) error {
	dec, ok := kinds[s.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", common.ErrUnknownKind, s.Kind)
	}
	if s.Payload == nil {
		return fmt.Errorf("%w: empty %s payload", common.ErrInvalidPayload, s.Kind)
	}
	if !dec.accepts(s.Payload) {
		return fmt.Errorf("%w: %T is not a %s", common.ErrInvalidPayload, s.Payload, s.Kind)
	}
	if strings.TrimSpace(s.Payload.RecordID()) == "" {
		return fmt.Errorf("%w: %s has no id", common.ErrInvalidPayload, s.Kind)
	}
	if err := s.Payload.Validate(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidPayload, err)
	}
	return nil
}

// NoopSubmitter validates and logs each submission, then discards it.
type NoopSubmitter struct {
	now func() time.Time
}

// NewNoopSubmitter returns the default submitter.
func NewNoopSubmitter() *NoopSubmitter {
	return &NoopSubmitter{now: time.Now}
}

// Submit logs the payload and reports it as not persisted.
func (n *NoopSubmitter) Submit(ctx context.Context, s Submission) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := validate(s); err != nil {
		return Result{}, err
	}

	slog.InfoContext(ctx, "Form submitted",
		"kind", s.Kind,
		"id", s.Payload.RecordID(),
		"payload", s.Payload)

	return Result{ID: s.Payload.RecordID(), SubmittedAt: n.now()}, nil
}

// StoreSubmitter saves each submission as JSON through a Repository.
type StoreSubmitter struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// NewStoreSubmitter returns a submitter that persists to repo.
func NewStoreSubmitter(repo Repository) *StoreSubmitter {
	return &StoreSubmitter{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Submit validates, encodes and saves the payload under a fresh submission ID.
func (s *StoreSubmitter) Submit(ctx context.Context, sub Submission) (Result, error) {
	if err := validate(sub); err != nil {
		return Result{}, err
	}

	payload, err := json.Marshal(sub.Payload)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode %s payload: %w", sub.Kind, err)
	}

	row := &model.Submission{
		ID:          s.newID(),
		Kind:        sub.Kind,
		Payload:     payload,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.repo.SaveSubmission(ctx, row); err != nil {
		return Result{}, fmt.Errorf("failed to save submission: %w", err)
	}

	slog.DebugContext(ctx, "Form submission saved",
		"kind", sub.Kind,
		"record", sub.Payload.RecordID(),
		"submission", row.ID)

	return Result{ID: row.ID, Persisted: true, SubmittedAt: row.SubmittedAt}, nil
}

// SubmitAll submits records of one kind in order. progress, when set, is
// called after each successful submission. It stops at the first error and
// returns the results gathered so far.
func SubmitAll(ctx context.Context, sub Submitter, kind string, records []model.Record, progress func(done int)) ([]Result, error) {
	results := make([]Result, 0, len(records))
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := sub.Submit(ctx, Submission{Kind: kind, Payload: r})
		if err != nil {
			return results, fmt.Errorf("record %d: %w", i, err)
		}
		results = append(results, res)
		if progress != nil {
			progress(i + 1)
		}
	}
	return results, nil
}
