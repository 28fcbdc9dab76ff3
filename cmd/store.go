package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roadworks/tachoscan/internal/contract"
	"github.com/roadworks/tachoscan/internal/reportstore"
	"github.com/roadworks/tachoscan/schema"
)

// storeSetup loads minimal configuration needed for report store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := reportstore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize report store: %w", err)
	}
	storeManager = reportstore.Manager

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on report store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by analysis commands. This avoids card decoding
// and complex config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage persisted analysis runs and exports",
	Long: `Manage the historical analysis runs persisted by the report store.

When enabled, tachoscan records every analysis run, storing:
- Run metadata (driver, timestamps, duration)
- Per-day activity summaries
- Detected infractions

This enables longitudinal compliance tracking and data export for BI tools.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show report store statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all stored runs
  migrate - Run database schema migrations

Examples:
  # Check store status
  tachoscan store status --store-backend sqlite

  # Export for analysis in pandas/DuckDB
  tachoscan store export --store-backend sqlite --output-file reports.parquet`,
}

// storeClearCmd clears the report store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all persisted analysis runs",
	Long: `Delete all stored analysis runs, day summaries and infractions.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the report tables

Examples:
  # Export before clearing
  tachoscan store export --store-backend sqlite --output-file backup.parquet
  tachoscan store clear --store-backend sqlite`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// For SQLite the connection string is the database file path.
		dbFilePath := cfg.StoreDBConnect
		if dbFilePath == "" {
			dbFilePath = contract.GetStoreDBFilePath()
		}
		if err := reportstore.ClearStore(cfg.StoreBackend, dbFilePath, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear report store", err)
		}
		fmt.Println("Report store cleared successfully.")
	},
}

// storeStatusCmd shows report store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display report store statistics and connection details",
	Long: `Show detailed information about the report store.

Displays:
- Backend type and connection status
- Total number of analysis runs stored
- Last run identifier and timestamp
- Database table sizes

Examples:
  # Check report store status
  tachoscan store status --store-backend sqlite`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := reportstore.Manager.GetReportStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get report store status", err)
		}
		reportstore.PrintStoreStatus(status)
	},
}

// storeExportCmd exports report data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export persisted runs to Parquet for BI tools and analytics",
	Long: `Export all stored report data to Parquet format for use with analytics tools.

Exports three datasets:
- Analysis runs - metadata about each analysis execution
- Day summaries - per-day activity totals for every run
- Infractions - detected violations per run

Parquet format enables fast querying with DuckDB, Apache Spark and pandas.

Requires: --output-file parameter

Examples:
  # Export all data
  tachoscan store export --store-backend sqlite --output-file tacho-data

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('tacho-data.infractions.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := reportstore.ExecuteReportExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export report data", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the report store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the report store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  tachoscan store migrate --store-backend sqlite

  # Migrate to specific version
  tachoscan store migrate --store-backend sqlite --target-version 1

  # Rollback to initial state
  tachoscan store migrate --store-backend sqlite --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := reportstore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
