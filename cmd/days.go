package cmd

import (
	"github.com/spf13/cobra"

	"github.com/roadworks/tachoscan/core"
	"github.com/roadworks/tachoscan/internal/contract"
)

// daysCmd prints per-day activity summaries for a driver card.
var daysCmd = &cobra.Command{
	Use:   "days [card-file]",
	Short: "Show per-day activity totals from a driver card.",
	Long: `Decode a .ddd driver card file and print one summary row per recorded day.

Each row reports hours spent per activity type:
- Driving
- Other work
- Availability
- Rest

Days are ordered most recent first. Total work is driving plus other work.

Examples:
  # Daily totals for a card file
  tachoscan days card.ddd

  # Only the last week of activity
  tachoscan days card.ddd --limit 7

  # Export daily totals to CSV for a spreadsheet
  tachoscan days card.ddd --output csv --output-file days.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyzeDays(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run days analysis", err)
		}
	},
}
