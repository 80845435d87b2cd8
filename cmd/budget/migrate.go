package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/budget-tracker/internal/cli"
	"github.com/Veraticus/budget-tracker/internal/common"
	"github.com/Veraticus/budget-tracker/internal/config"
	"github.com/Veraticus/budget-tracker/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the ledger database schema to the latest version.

With --from-json, a ledger saved as a JSON snapshot is imported into the
database after the schema is up to date.`,
		Example: `  # Create or update the schema
  budget migrate

  # Move an existing JSON ledger into SQLite
  budget migrate --from-json ~/budget_data.json`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	// Flags
	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")
	cmd.Flags().String("from-json", "", "Import the account from a JSON snapshot file")
	cmd.Flags().Bool("overwrite", false, "Replace an account already stored in the database")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	fromJSON, _ := cmd.Flags().GetString("from-json")
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Storage.Backend != storage.BackendSQLite {
		return common.NewUserError("Migrations need the sqlite backend",
			fmt.Errorf("configured backend is %q", cfg.Storage.Backend))
	}

	slog.Info("Starting database migration",
		"database", cfg.Storage.Path,
		"status_only", status)

	store, err := storage.NewSQLiteStorage(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if status {
		current, err := store.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatTitle("Database Migration Status"))
		fmt.Fprintf(out, "  Database:        %s\n", cfg.Storage.Path)
		fmt.Fprintf(out, "  Current version: %d\n", current)
		fmt.Fprintf(out, "  Latest version:  %d\n", storage.ExpectedSchemaVersion)
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Fprintln(out, cli.FormatSuccess("Database migrations completed successfully!"))

	if fromJSON == "" {
		return nil
	}

	source, err := storage.NewJSONStorage(config.ExpandPath(fromJSON))
	if err != nil {
		return err
	}

	n, err := storage.ImportAccount(ctx, source, store, storage.ImportOptions{
		OnProgress: cli.NewProgressReporter(out, "Importing transactions..."),
		Overwrite:  overwrite,
	})
	switch {
	case errors.Is(err, storage.ErrAccountExists):
		return common.NewUserError("The database already holds an account; use --overwrite to replace it", err)
	case errors.Is(err, common.ErrNotFound):
		return common.NewUserError("JSON snapshot not found", err)
	case err != nil:
		return fmt.Errorf("import failed: %w", err)
	}

	common.LogInfo("Imported JSON snapshot", common.Fields{
		"source":       source.Path(),
		"transactions": n,
	})
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d transactions from %s", n, source.Path())))
	return nil
}
