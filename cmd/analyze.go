package cmd

import (
	"github.com/spf13/cobra"

	"github.com/roadworks/tachoscan/core"
	"github.com/roadworks/tachoscan/internal/contract"
)

// analyzeCmd runs the full card analysis and prints the combined report.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [card-file]",
	Short: "Decode a driver card file and print the full compliance report.",
	Long: `Decode a .ddd driver card file and print the complete analysis report.

The report combines:
- Driver identity read from the card
- Per-day activity totals (driving, other work, availability, rest)
- EU 561/2006 infractions with severity levels

Infractions are checked against the driving and rest time rules:
- Continuous driving beyond 4h30 without a qualifying break
- Daily driving beyond 9h (10h allowed twice per week)
- Weekly driving beyond 56h and two-week driving beyond 90h
- Insufficient daily rest and excess reduced rests
- More than six consecutive driving days without a weekly rest

Examples:
  # Full report for a card file
  tachoscan analyze card.ddd

  # Restrict the report to a date range
  tachoscan analyze card.ddd --start 2025-03-01 --end 2025-03-28

  # Machine-readable report
  tachoscan analyze card.ddd --output json --output-file report.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyzeReport(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run card analysis", err)
		}
	},
}
