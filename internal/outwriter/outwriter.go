// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/roadworks/tachoscan/internal/contract"
	"github.com/roadworks/tachoscan/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDays prints day summaries using the configured output format.
func (ow *OutWriter) WriteDays(days []schema.DailySummary, cfg *contract.Config, duration time.Duration) error {
	return PrintDaySummaries(days, cfg, duration)
}

// WriteInfractions prints infractions using the configured output format.
func (ow *OutWriter) WriteInfractions(infractions []schema.Infraction, cfg *contract.Config, duration time.Duration) error {
	return PrintInfractions(infractions, cfg, duration)
}

// WriteReport prints the full analysis report using the configured output format.
func (ow *OutWriter) WriteReport(analysis *schema.CardAnalysis, cfg *contract.Config, duration time.Duration) error {
	return PrintReport(analysis, cfg, duration)
}

// GetMaxTableDescWidth calculates the maximum width for infraction descriptions
// in table output based on terminal width and table configuration.
func GetMaxTableDescWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns: date, code, type, severity plus
	// table borders, separators and padding.
	baseWidth := 70

	available := termWidth - baseWidth
	if available < 20 {
		// Minimum reasonable description width
		return 20
	}
	if available > 90 {
		// Maximum description width to keep rows readable
		return 90
	}
	return available
}
