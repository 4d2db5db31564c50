package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/Veraticus/crm-dashboard/internal/common"
	"github.com/Veraticus/crm-dashboard/internal/model"
	"github.com/Veraticus/crm-dashboard/internal/service"
)

// SaveSubmission stores a single submission.
func (s *SQLiteStorage) SaveSubmission(ctx context.Context, submission *model.Submission) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSubmission(submission); err != nil {
		return err
	}
	return saveSubmissionTx(ctx, s.db, submission)
}

// SaveSubmissions stores a batch of submissions atomically.
func (s *SQLiteStorage) SaveSubmissions(ctx context.Context, submissions []model.Submission) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSubmissions(submissions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range submissions {
		if err := saveSubmissionTx(ctx, tx, &submissions[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func saveSubmissionTx(ctx context.Context, q queryable, submission *model.Submission) error {
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}
	submission.SubmittedAt = submission.SubmittedAt.UTC()

	_, err := q.ExecContext(ctx, `
		INSERT INTO submissions (id, kind, payload, submitted_at)
		VALUES (?, ?, ?, ?)
	`, submission.ID, submission.Kind, string(submission.Payload), submission.SubmittedAt)

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
		return fmt.Errorf("%w: submission %s", common.ErrDuplicateEntry, submission.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// GetSubmission retrieves a submission by ID.
func (s *SQLiteStorage) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var (
		sub     model.Submission
		payload string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, kind, payload, submitted_at
		FROM submissions
		WHERE id = ?
	`, id).Scan(&sub.ID, &sub.Kind, &payload, &sub.SubmittedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: submission %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	sub.Payload = []byte(payload)
	return &sub, nil
}

// GetSubmissions lists submissions, newest first.
func (s *SQLiteStorage) GetSubmissions(ctx context.Context, filter service.SubmissionFilter) ([]model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if filter.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, filter.Kind)
	}
	if filter.Since != nil {
		where = append(where, "submitted_at >= ?")
		args = append(args, filter.Since.UTC())
	}

	query := "SELECT id, kind, payload, submitted_at FROM submissions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY submitted_at DESC, id"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	submissions := []model.Submission{}
	for rows.Next() {
		var (
			sub     model.Submission
			payload string
		)
		if err := rows.Scan(&sub.ID, &sub.Kind, &payload, &sub.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		sub.Payload = []byte(payload)
		submissions = append(submissions, sub)
	}

	return submissions, rows.Err()
}

// CountSubmissions counts stored submissions. An empty kind counts all of them.
func (s *SQLiteStorage) CountSubmissions(ctx context.Context, kind string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	var err error
	if kind == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions WHERE kind = ?`, kind).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}

// DeleteSubmission removes a submission.
func (s *SQLiteStorage) DeleteSubmission(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: submission %s", common.ErrNotFound, id)
	}
	return nil
}
