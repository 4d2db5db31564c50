package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/crm-dashboard/internal/cli"
	"github.com/Veraticus/crm-dashboard/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply pending migrations to the submission database, or report its schema version.`,
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show the schema version without migrating")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// initStorage migrates on open.
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if status, _ := cmd.Flags().GetBool("status"); status {
		fmt.Fprintf(out, "Schema version %d (expected %d)\n", version, storage.ExpectedSchemaVersion)
		return nil
	}

	slog.Debug("Migrations complete", "version", version)
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database is at schema version %d", version)))
	return nil
}
