// Package service defines the interfaces shared between the storage layer
// and its consumers.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/crm-dashboard/internal/model"
)

// SubmissionFilter defines filtering options for submission queries.
type SubmissionFilter struct {
	Since  *time.Time
	Kind   string
	Limit  int
	Offset int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Submission operations
	SaveSubmission(ctx context.Context, submission *model.Submission) error
	SaveSubmissions(ctx context.Context, submissions []model.Submission) error
	GetSubmission(ctx context.Context, id string) (*model.Submission, error)
	GetSubmissions(ctx context.Context, filter SubmissionFilter) ([]model.Submission, error)
	CountSubmissions(ctx context.Context, kind string) (int, error)
	DeleteSubmission(ctx context.Context, id string) error

	// Schema
	Migrate(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int, error)

	// Transaction support
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction groups submission writes that commit or roll back together.
type Transaction interface {
	SaveSubmission(ctx context.Context, submission *model.Submission) error
	Commit() error
	Rollback() error
}
