// Package testutil provides test helpers shared across packages: an
// in-memory submission database and a builder for submission rows.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/crm-dashboard/internal/model"
	"github.com/Veraticus/crm-dashboard/internal/service"
	"github.com/Veraticus/crm-dashboard/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database seeded with the given
// submissions. It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		testutil.NewSubmissionBuilder(t).
//			WithContact("C-1").
//			Build()...,
//	)
func SetupTestDB(t *testing.T, seed ...model.Submission) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Seed: seed})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.Storage) error
	Seed           []model.Submission
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if len(opts.Seed) > 0 {
		if err := store.SaveSubmissions(ctx, opts.Seed); err != nil {
			t.Fatalf("failed to seed submissions: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustCount returns the number of stored submissions of kind or fails the test.
func (db *TestDB) MustCount(kind string) int {
	db.t.Helper()
	n, err := db.Storage.CountSubmissions(context.Background(), kind)
	if err != nil {
		db.t.Fatalf("failed to count submissions: %v", err)
	}
	return n
}

// WithTransaction executes the given function within a database transaction.
// The transaction is always rolled back after the function completes.
func (db *TestDB) WithTransaction(fn func(tx service.Transaction) error) error {
	tx, err := db.Storage.BeginTx(context.Background())
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	return fn(tx)
}
