package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/crm-dashboard/internal/cli"
	"github.com/Veraticus/crm-dashboard/internal/common"
	"github.com/Veraticus/crm-dashboard/internal/config"
	"github.com/Veraticus/crm-dashboard/internal/forms"
	"github.com/Veraticus/crm-dashboard/internal/service"
)

func formsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Submit and review create/edit form payloads",
		Long: `Submit records through the same path as the dashboard's create and
edit forms. Payloads are validated and logged; with --persist (or
forms.persist in config) they are also saved for later review.

Record kinds: ` + strings.Join(forms.Kinds(), ", "),
	}

	cmd.PersistentFlags().Bool("persist", false, "Save submissions to the database")
	_ = viper.BindPFlag("forms.persist", cmd.PersistentFlags().Lookup("persist"))

	cmd.AddCommand(formsSubmitCmd())
	cmd.AddCommand(formsImportCmd())
	cmd.AddCommand(formsListCmd())
	cmd.AddCommand(formsDeleteCmd())

	return cmd
}

func formsSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <kind>",
		Short: "Submit one record",
		Args:  cobra.ExactArgs(1),
		RunE:  runFormsSubmit,
	}
	cmd.Flags().String("file", "-", "YAML or JSON record to submit (- for stdin)")
	return cmd
}

func formsImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <kind> <file>",
		Short: "Submit every record in a YAML list",
		Args:  cobra.ExactArgs(2),
		RunE:  runFormsImport,
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func formsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved submissions",
		Args:  cobra.NoArgs,
		RunE:  runFormsList,
	}
	cmd.Flags().String("kind", "", "Only show submissions of this kind")
	cmd.Flags().Int("limit", 20, "Maximum submissions to show (0 for all)")
	return cmd
}

func formsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved submission",
		Args:  cobra.ExactArgs(1),
		RunE:  runFormsDelete,
	}
}

func runFormsSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	kind := args[0]

	file, _ := cmd.Flags().GetString("file")
	data, err := readInput(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}

	record, err := forms.Decode(kind, data)
	if err != nil {
		return formError(kind, err)
	}

	sub, closeSub, err := newSubmitter(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeSub() }()

	res, err := sub.Submit(ctx, forms.Submission{Kind: kind, Payload: record})
	if err != nil {
		return formError(kind, err)
	}

	out := cmd.OutOrStdout()
	if res.Persisted {
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Saved %s %s as submission %s", kind, record.RecordID(), res.ID)))
	} else {
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Accepted %s %s", kind, record.RecordID())))
	}
	return nil
}

func runFormsImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	kind, file := args[0], args[1]

	data, err := readInput(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}
	records, err := forms.DecodeBatch(kind, data)
	if err != nil {
		return formError(kind, err)
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No records to import"))
		return nil
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), cmd.OutOrStdout(),
			fmt.Sprintf("Submit %d %s records?", len(records), kind))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Import canceled"))
			return nil
		}
	}

	sub, closeSub, err := newSubmitter(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeSub() }()

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx = handler.HandleInterrupts(ctx, "Import", viper.GetBool("forms.persist"))

	bar := cli.NewProgress(cmd.ErrOrStderr(), len(records), "Submitting "+kind+" records")
	results, err := forms.SubmitAll(ctx, sub, kind, records, bar.Set)
	if err != nil {
		if handler.WasInterrupted() {
			return common.NewUserError(fmt.Sprintf("Import interrupted after %d of %d records", len(results), len(records)), err)
		}
		return formError(kind, err)
	}
	bar.Finish()

	slog.Debug("Import finished", "kind", kind, "records", len(results))
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Submitted %d %s records", len(results), kind)))
	return nil
}

func runFormsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	subs, err := store.GetSubmissions(ctx, service.SubmissionFilter{Kind: kind, Limit: limit})
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(subs) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No submissions saved"))
		return nil
	}

	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, []string{
			s.ID,
			s.Kind,
			humanize.Time(s.SubmittedAt),
			humanize.Bytes(uint64(len(s.Payload))),
		})
	}
	fmt.Fprintln(out, cli.RenderTable(
		[]string{"ID", "Kind", "Submitted", "Size"},
		[]int{36, 10, 16, 8},
		rows))

	total, err := store.CountSubmissions(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to count submissions: %w", err)
	}
	fmt.Fprintf(out, "%d of %d submissions\n", len(subs), total)
	return nil
}

func runFormsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteSubmission(ctx, args[0]); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUserError(fmt.Sprintf("No submission with id %s", args[0]), err)
		}
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted submission "+args[0]))
	return nil
}

// readInput reads path, or r when path is "-".
func readInput(r io.Reader, path string) ([]byte, error) {
	if path == "-" || path == "" {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(config.ExpandPath(path)) // #nosec G304 - user-chosen input path
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("Could not read %s", path), err)
	}
	return data, nil
}

// formError turns payload and kind errors into messages fit for the terminal.
func formError(kind string, err error) error {
	switch {
	case errors.Is(err, common.ErrUnknownKind):
		return common.NewUserError(
			fmt.Sprintf("Unknown record kind %q; choose one of: %s", kind, strings.Join(forms.Kinds(), ", ")), err)
	case errors.Is(err, common.ErrInvalidPayload):
		return common.NewUserError(err.Error(), err)
	default:
		return err
	}
}
