package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/roadworks/tachoscan/internal/contract"
	"github.com/roadworks/tachoscan/schema"
)

// PrintDaySummaries outputs the day summaries, dispatching based on the output format configured.
func PrintDaySummaries(days []schema.DailySummary, cfg *contract.Config, duration time.Duration) error {
	// Create formatter using helper
	fmtFloat := createFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForDays(days, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForDays(days, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printDaysTable(days, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForDays handles opening the file and calling the JSON writer.
func printJSONResultsForDays(days []schema.DailySummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, days)
	}, "Wrote JSON")
}

// printCSVResultsForDays handles opening the file and calling the CSV writer.
func printCSVResultsForDays(days []schema.DailySummary, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"date", "driving_hours", "other_work_hours", "availability_hours", "rest_hours", "total_work_hours"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, day := range days {
				row := []string{
					day.Date,
					fmtFloat(day.DrivingHours),
					fmtFloat(day.OtherWorkHours),
					fmtFloat(day.AvailabilityHours),
					fmtFloat(day.RestHours),
					fmtFloat(day.TotalWorkHours),
				}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// printDaysTable prints the day summaries in the human-readable table format,
// using the tablewriter API.
func printDaysTable(days []schema.DailySummary, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"Date", "Conduite", "Autre travail", "Disponibilite", "Repos", "Travail total"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	for _, day := range days {
		data = append(data, []string{
			day.Date,
			fmtFloat(day.DrivingHours),
			fmtFloat(day.OtherWorkHours),
			fmtFloat(day.AvailabilityHours),
			fmtFloat(day.RestHours),
			fmtFloat(day.TotalWorkHours),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	totalDriving := 0.0
	totalWork := 0.0
	for _, day := range days {
		totalDriving += day.DrivingHours
		totalWork += day.TotalWorkHours
	}
	fmt.Printf("Showing %d days (total driving: %s, total work: %s)\n",
		len(days), schema.FormatHours(totalDriving), schema.FormatHours(totalWork))
	fmt.Printf("Analysis completed in %v. Store backend: %s\n", duration, cfg.StoreBackend)
	return nil
}
