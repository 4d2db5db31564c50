package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/crm-dashboard/internal/cli"
	"github.com/Veraticus/crm-dashboard/internal/common"
	"github.com/Veraticus/crm-dashboard/internal/config"
	"github.com/Veraticus/crm-dashboard/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export page reports",
		Long: `Export a page's stat cards, distributions and matching records to
Google Sheets or CSV.`,
	}

	cmd.AddCommand(exportSheetsCmd())
	cmd.AddCommand(exportCSVCmd())
	cmd.AddCommand(exportAuthCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets <page>",
		Short: "Export a page to Google Sheets",
		Long: `Write a page report to its own tab of the configured spreadsheet.

Credentials come from sheets.* in the config file or GOOGLE_SHEETS_*
environment variables: either a service account key file, or an OAuth2
client with a refresh token obtained by 'crm export auth'.`,
		Args: cobra.ExactArgs(1),
		RunE: runExportSheets,
	}
	addFilterFlags(cmd)
	return cmd
}

func exportCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv <page>",
		Short: "Export a page as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCSV,
	}
	addFilterFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func exportAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Open a local callback server and print the consent URL
2. Save the token for future use
3. Update your config file with the refresh token

You'll need to run this once before 'crm export sheets' unless you use a
service account.`,
		Args: cobra.NoArgs,
		RunE: runExportAuth,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")

	return cmd
}

func runExportSheets(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	report, err := buildReport(cmd, args[0])
	if err != nil {
		return err
	}

	writer, err := newSheetsWriter(ctx)
	if err != nil {
		return err
	}

	slog.Info(cli.FormatInfo(fmt.Sprintf("Exporting %s (%d rows) to Google Sheets...", report.Title, len(report.Rows))))
	if err := writer.Write(ctx, report); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	slog.Info(cli.FormatSuccess("Export complete"))
	return nil
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	report, err := buildReport(cmd, args[0])
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return sheets.NewCSVWriter(cmd.OutOrStdout()).Write(cmd.Context(), report)
	}

	f, err := os.Create(config.ExpandPath(output)) // #nosec G304 - user-chosen output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := sheets.NewCSVWriter(f).Write(cmd.Context(), report); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func runExportAuth(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Get OAuth2 config
	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")

	// Override with flags if provided
	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}

	// Check for environment variables as fallback
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return common.NewUserError(
			"OAuth2 credentials not found. Set sheets.client_id and sheets.client_secret in config or use --client-id and --client-secret",
			common.ErrMissingConfig)
	}

	dir, err := config.Dir()
	if err != nil {
		return fmt.Errorf("failed to locate config directory: %w", err)
	}
	tokenFile := filepath.Join(dir, "sheets-token.json")

	slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

	token, err := sheets.GetOrCreateToken(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	// Update config file with refresh token
	viper.Set("sheets.refresh_token", token.RefreshToken)
	if err := saveConfig(); err != nil {
		slog.Warn("Failed to update config file with refresh token", "error", err)
		slog.Info("Please add this to your config.yaml manually:")
		slog.Info(fmt.Sprintf("sheets:\n  refresh_token: %q", token.RefreshToken))
	} else {
		slog.Info(cli.FormatSuccess("Authentication successful! Refresh token saved to config"))
	}

	slog.Info("Run 'crm export sheets <page>' to export a report.")
	return nil
}

// buildReport evaluates the named page under the command's filter flags.
func buildReport(cmd *cobra.Command, name string) (sheets.Report, error) {
	reg, err := loadRegistry()
	if err != nil {
		return sheets.Report{}, err
	}
	p, err := resolvePage(reg, name)
	if err != nil {
		return sheets.Report{}, err
	}
	state, err := filterStateFromFlags(cmd, p)
	if err != nil {
		return sheets.Report{}, err
	}
	return sheets.NewReport(p, state, time.Now())
}

// newSheetsWriter loads sheets.* configuration and connects to the API.
func newSheetsWriter(ctx context.Context) (*sheets.Writer, error) {
	cfg, err := config.LoadSheetsConfig()
	if err != nil {
		if errors.Is(err, common.ErrMissingConfig) || errors.Is(err, common.ErrInvalidConfig) {
			return nil, common.NewUserError("Google Sheets is not configured; run 'crm export auth' or set sheets.service_account_path", err)
		}
		return nil, err
	}

	writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Google Sheets: %w", err)
	}
	return writer, nil
}

// saveConfig writes the current viper settings back to the config file,
// creating config.yaml in the config directory when none was loaded.
func saveConfig() error {
	if viper.ConfigFileUsed() != "" {
		return viper.WriteConfig()
	}

	dir, err := config.Dir()
	if err != nil {
		return fmt.Errorf("failed to locate config directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return viper.WriteConfigAs(filepath.Join(dir, "config.yaml"))
}
