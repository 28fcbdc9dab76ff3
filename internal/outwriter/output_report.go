package outwriter

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/roadworks/tachoscan/internal/contract"
	"github.com/roadworks/tachoscan/schema"
)

// ReportEnvelope is the wire shape of a successful full-report response. The
// same envelope is served by the HTTP API and written by the JSON output mode.
type ReportEnvelope struct {
	Success     bool                  `json:"success"`
	Driver      schema.DriverIdentity `json:"driver"`
	Infractions []schema.Infraction   `json:"infractions"`
	Days        []schema.DailySummary `json:"days"`
}

// NewReportEnvelope wraps an analysis into the success envelope. Days and
// infractions are never nil on the wire, even when empty.
func NewReportEnvelope(analysis *schema.CardAnalysis) ReportEnvelope {
	days := analysis.Days
	if days == nil {
		days = []schema.DailySummary{}
	}
	infractions := analysis.Infractions
	if infractions == nil {
		infractions = []schema.Infraction{}
	}
	return ReportEnvelope{
		Success:     true,
		Driver:      analysis.Driver,
		Infractions: infractions,
		Days:        days,
	}
}

// PrintReport outputs the full analysis report, dispatching based on the output format configured.
// CSV output is not supported for the combined report; the days and infractions
// commands cover the flat exports.
func PrintReport(analysis *schema.CardAnalysis, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONReport(analysis, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		return errors.New("csv output is not supported for the full report; use the days or infractions command")
	default:
		if err := printTextReport(analysis, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONReport handles opening the file and writing the wire envelope.
func printJSONReport(analysis *schema.CardAnalysis, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, NewReportEnvelope(analysis))
	}, "Wrote JSON")
}

// printTextReport prints the driver block followed by the infraction and day tables.
func printTextReport(analysis *schema.CardAnalysis, cfg *contract.Config, duration time.Duration) error {
	fmt.Printf("Conducteur: %s %s\n", analysis.Driver.FirstName, analysis.Driver.Name)
	fmt.Printf("Carte: %s\n", analysis.Driver.CardNumber)
	fmt.Println()

	fmt.Println("Infractions:")
	if err := printInfractionsTable(analysis.Infractions, cfg, duration); err != nil {
		return err
	}
	fmt.Println()

	fmt.Println("Journees:")
	fmtFloat := createFormatter(cfg.Precision)
	return printDaysTable(analysis.Days, cfg, fmtFloat, duration)
}
