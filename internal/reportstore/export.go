package reportstore

import (
	"errors"
	"fmt"

	"github.com/roadworks/tachoscan/internal/parquet"
)

// ExecuteReportExport performs the actual export of report data to Parquet files.
func ExecuteReportExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the report store
	store := Manager.GetReportStore()
	if store == nil {
		return errors.New("report store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no report data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total infraction records: %d\n", status.TableSizes[infractionsTable])

	// Retrieve all analysis runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	// Retrieve all day summaries
	days, err := store.GetAllDaySummaries()
	if err != nil {
		return fmt.Errorf("failed to retrieve day summaries: %w", err)
	}

	// Retrieve all infractions
	infractions, err := store.GetAllInfractions()
	if err != nil {
		return fmt.Errorf("failed to retrieve infractions: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertAnalysisRunRecords(runs)
	parquetDays := parquet.ConvertDaySummaryRecords(days)
	parquetInfractions := parquet.ConvertInfractionRecords(infractions)

	// Write analysis runs to Parquet
	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetRuns), runsFile)

	// Write day summaries to Parquet
	daysFile := outputFile + ".day_summaries.parquet"
	if err := parquet.WriteDaySummariesParquet(parquetDays, daysFile); err != nil {
		return fmt.Errorf("failed to write day summaries: %w", err)
	}
	fmt.Printf("Exported %d day summaries to: %s\n", len(parquetDays), daysFile)

	// Write infractions to Parquet
	infractionsFile := outputFile + ".infractions.parquet"
	if err := parquet.WriteInfractionsParquet(parquetInfractions, infractionsFile); err != nil {
		return fmt.Errorf("failed to write infractions: %w", err)
	}
	fmt.Printf("Exported %d infractions to: %s\n", len(parquetInfractions), infractionsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
