package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/crm-dashboard/internal/common"
	"github.com/Veraticus/crm-dashboard/internal/model"
	"github.com/Veraticus/crm-dashboard/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func testSubmission(id, kind string, at time.Time) model.Submission {
	return model.Submission{
		ID:          id,
		Kind:        kind,
		Payload:     []byte(`{"id":"` + id + `"}`),
		SubmittedAt: at,
	}
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage("  "); !errors.Is(err, ErrEmptyString) {
		t.Errorf("NewSQLiteStorage() error = %v, want %v", err, ErrEmptyString)
	}
}

func TestMigrate(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("SchemaVersion() = %d, want %d", version, ExpectedSchemaVersion)
	}

	// Running again is a no-op.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	var indexCount int
	err = store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name IN ('idx_submissions_kind', 'idx_submissions_submitted_at')
	`).Scan(&indexCount)
	if err != nil {
		t.Fatalf("Failed to check indexes: %v", err)
	}
	if indexCount != 2 {
		t.Errorf("found %d submission indexes, want 2", indexCount)
	}
}

func TestSQLiteStorage_SaveSubmission(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		setup      func(*testing.T, *SQLiteStorage)
		wantErr    error
		submission *model.Submission
		name       string
	}{
		{
			name:       "valid submission",
			submission: func() *model.Submission { s := testSubmission("s-1", "contact", base); return &s }(),
		},
		{
			name:       "nil submission",
			submission: nil,
			wantErr:    ErrNilParameter,
		},
		{
			name:       "missing kind",
			submission: func() *model.Submission { s := testSubmission("s-1", "", base); return &s }(),
			wantErr:    ErrInvalidSubmission,
		},
		{
			name: "invalid json",
			submission: &model.Submission{
				ID:      "s-1",
				Kind:    "contact",
				Payload: []byte("{not json"),
			},
			wantErr: ErrInvalidSubmission,
		},
		{
			name:       "duplicate id",
			submission: func() *model.Submission { s := testSubmission("s-1", "deal", base); return &s }(),
			setup: func(t *testing.T, s *SQLiteStorage) {
				t.Helper()
				dup := testSubmission("s-1", "contact", base)
				if err := s.SaveSubmission(context.Background(), &dup); err != nil {
					t.Fatalf("setup SaveSubmission() error = %v", err)
				}
			},
			wantErr: common.ErrDuplicateEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()

			if tt.setup != nil {
				tt.setup(t, store)
			}

			err := store.SaveSubmission(context.Background(), tt.submission)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("SaveSubmission() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SaveSubmission() unexpected error = %v", err)
			}

			got, err := store.GetSubmission(context.Background(), tt.submission.ID)
			if err != nil {
				t.Fatalf("GetSubmission() error = %v", err)
			}
			if got.Kind != tt.submission.Kind || string(got.Payload) != string(tt.submission.Payload) {
				t.Errorf("GetSubmission() = %+v, want %+v", got, tt.submission)
			}
			if !got.SubmittedAt.Equal(base) {
				t.Errorf("SubmittedAt = %v, want %v", got.SubmittedAt, base)
			}
		})
	}
}

func TestSQLiteStorage_SaveSubmission_SetsTime(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	sub := testSubmission("s-1", "ticket", time.Time{})
	if err := store.SaveSubmission(context.Background(), &sub); err != nil {
		t.Fatalf("SaveSubmission() error = %v", err)
	}
	if sub.SubmittedAt.IsZero() {
		t.Error("SubmittedAt was not set")
	}
}

func TestSQLiteStorage_GetSubmissions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	subs := []model.Submission{
		testSubmission("s-1", "contact", base),
		testSubmission("s-2", "deal", base.Add(time.Hour)),
		testSubmission("s-3", "contact", base.Add(2*time.Hour)),
	}
	if err := store.SaveSubmissions(ctx, subs); err != nil {
		t.Fatalf("SaveSubmissions() error = %v", err)
	}

	since := base.Add(30 * time.Minute)
	tests := []struct {
		name   string
		filter service.SubmissionFilter
		want   []string
	}{
		{name: "all newest first", want: []string{"s-3", "s-2", "s-1"}},
		{name: "by kind", filter: service.SubmissionFilter{Kind: "contact"}, want: []string{"s-3", "s-1"}},
		{name: "since", filter: service.SubmissionFilter{Since: &since}, want: []string{"s-3", "s-2"}},
		{name: "limit and offset", filter: service.SubmissionFilter{Limit: 1, Offset: 1}, want: []string{"s-2"}},
		{name: "no match", filter: service.SubmissionFilter{Kind: "partner"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetSubmissions(ctx, tt.filter)
			if err != nil {
				t.Fatalf("GetSubmissions() error = %v", err)
			}
			ids := make([]string, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("GetSubmissions() = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("GetSubmissions()[%d] = %s, want %s", i, ids[i], tt.want[i])
				}
			}
		})
	}

	count, err := store.CountSubmissions(ctx, "contact")
	if err != nil {
		t.Fatalf("CountSubmissions() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountSubmissions(contact) = %d, want 2", count)
	}

	total, err := store.CountSubmissions(ctx, "")
	if err != nil {
		t.Fatalf("CountSubmissions() error = %v", err)
	}
	if total != 3 {
		t.Errorf("CountSubmissions() = %d, want 3", total)
	}
}

func TestSQLiteStorage_SaveSubmissions_Atomic(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now()
	batch := []model.Submission{
		testSubmission("s-1", "contact", now),
		testSubmission("s-1", "contact", now),
	}
	if err := store.SaveSubmissions(ctx, batch); !errors.Is(err, common.ErrDuplicateEntry) {
		t.Fatalf("SaveSubmissions() error = %v, want %v", err, common.ErrDuplicateEntry)
	}

	count, err := store.CountSubmissions(ctx, "")
	if err != nil {
		t.Fatalf("CountSubmissions() error = %v", err)
	}
	if count != 0 {
		t.Errorf("failed batch left %d rows behind", count)
	}

	if err := store.SaveSubmissions(ctx, nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("SaveSubmissions(nil) error = %v, want %v", err, ErrNilParameter)
	}
	if err := store.SaveSubmissions(ctx, []model.Submission{}); !errors.Is(err, ErrEmptySlice) {
		t.Errorf("SaveSubmissions(empty) error = %v, want %v", err, ErrEmptySlice)
	}
}

func TestSQLiteStorage_DeleteSubmission(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	sub := testSubmission("s-1", "contact", time.Now())
	if err := store.SaveSubmission(ctx, &sub); err != nil {
		t.Fatalf("SaveSubmission() error = %v", err)
	}

	if err := store.DeleteSubmission(ctx, "s-1"); err != nil {
		t.Fatalf("DeleteSubmission() error = %v", err)
	}
	if _, err := store.GetSubmission(ctx, "s-1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetSubmission() after delete error = %v, want %v", err, common.ErrNotFound)
	}
	if err := store.DeleteSubmission(ctx, "s-1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("second DeleteSubmission() error = %v, want %v", err, common.ErrNotFound)
	}
}

func TestSQLiteStorage_Transaction(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx() error = %v", err)
	}
	sub := testSubmission("s-1", "deal", time.Now())
	if err := tx.SaveSubmission(ctx, &sub); err != nil {
		t.Fatalf("tx.SaveSubmission() error = %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}

	count, err := store.CountSubmissions(ctx, "")
	if err != nil {
		t.Fatalf("CountSubmissions() error = %v", err)
	}
	if count != 0 {
		t.Errorf("rolled back transaction left %d rows", count)
	}

	tx, err = store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx() error = %v", err)
	}
	if err := tx.SaveSubmission(ctx, &sub); err != nil {
		t.Fatalf("tx.SaveSubmission() error = %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if _, err := store.GetSubmission(ctx, "s-1"); err != nil {
		t.Errorf("GetSubmission() after commit error = %v", err)
	}
}
