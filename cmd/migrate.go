package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/killallgit/audioengine/internal/database"
	"github.com/killallgit/audioengine/internal/models"
	"github.com/killallgit/audioengine/pkg/config"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the waveform store schema.

The store is a SQLite database at database.path holding decoded waveforms.
Migrations are applied with GORM auto-migration, which only adds tables,
columns and indexes.

Available subcommands:
  up      - Create or update every table
  status  - Show which tables exist and how many rows they hold`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update every table",
	Long: `Apply GORM auto-migration for every model.

This creates the waveforms table and its indexes when missing and adds any
new columns to an existing table.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long: `Display the current status of the waveform store.

For every model table this shows whether it exists and how many rows it holds.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	db, err := database.InitializeWithMigrations(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d model(s) in %s\n", len(models.AllModels()), cfg.Database.Path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	if cfg.Database.Path == "" {
		return database.ErrPathNotConfigured
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return err
	}
	defer db.Close()

	statuses, err := db.Status(models.AllModels()...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Database: %s\n\n", cfg.Database.Path)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tSTATUS\tROWS")
	for _, s := range statuses {
		state := "pending"
		if s.Exists {
			state = "applied"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", s.Table, state, s.Rows)
	}
	return w.Flush()
}
