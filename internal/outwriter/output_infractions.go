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

// PrintInfractions outputs the infractions, dispatching based on the output format configured.
func PrintInfractions(infractions []schema.Infraction, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForInfractions(infractions, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForInfractions(infractions, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printInfractionsTable(infractions, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForInfractions handles opening the file and calling the JSON writer.
func printJSONResultsForInfractions(infractions []schema.Infraction, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, infractions)
	}, "Wrote JSON")
}

// printCSVResultsForInfractions handles opening the file and calling the CSV writer.
func printCSVResultsForInfractions(infractions []schema.Infraction, cfg *contract.Config) error {
	header := []string{"date", "code", "type", "severity", "description"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, inf := range infractions {
				row := []string{
					inf.Date,
					string(inf.Code),
					inf.Type,
					contract.GetPlainSeverityLabel(inf.Severity),
					inf.Description,
				}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// printInfractionsTable prints the infractions in the human-readable table format,
// using the tablewriter API.
func printInfractionsTable(infractions []schema.Infraction, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"Date", "Code", "Type", "Gravite", "Description"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	// 3. Prepare Data Rows
	descWidth := GetMaxTableDescWidth(cfg)
	var data [][]string
	bySeverity := make(map[schema.Severity]int)
	for _, inf := range infractions {
		bySeverity[inf.Severity]++

		date := inf.Date
		if date == "" {
			date = "-"
		}
		label := contract.GetPlainSeverityLabel(inf.Severity)
		if cfg.UseColors {
			label = contract.GetColorSeverityLabel(inf.Severity)
		}
		data = append(data, []string{
			date,
			string(inf.Code),
			inf.Type,
			label,
			contract.TruncateText(inf.Description, descWidth),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Showing %d infractions (%d tres grave, %d grave, %d moyenne, %d legere)\n",
		len(infractions),
		bySeverity[schema.SeverityTresGrave],
		bySeverity[schema.SeverityGrave],
		bySeverity[schema.SeverityMoyenne],
		bySeverity[schema.SeverityLegere])
	fmt.Printf("Analysis completed in %v. Store backend: %s\n", duration, cfg.StoreBackend)
	return nil
}
