package cmd

import (
	"github.com/spf13/cobra"

	"github.com/roadworks/tachoscan/core"
	"github.com/roadworks/tachoscan/internal/contract"
)

// infractionsCmd prints the infractions detected on a driver card.
var infractionsCmd = &cobra.Command{
	Use:   "infractions [card-file]",
	Short: "Show EU 561/2006 infractions detected on a driver card.",
	Long: `Decode a .ddd driver card file and print the detected infractions.

Each infraction carries:
- The date of the violation (when one applies)
- A rule code and rule family
- A severity level: TRES_GRAVE, GRAVE, MOYENNE or LEGERE
- A human-readable description with the measured amounts

Severity labels are colored by default; disable with --color no.

Examples:
  # All infractions on a card
  tachoscan infractions card.ddd

  # Infractions for a specific week
  tachoscan infractions card.ddd --start 2025-03-03 --end 2025-03-09

  # Plain output for scripts
  tachoscan infractions card.ddd --color no --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyzeInfractions(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run infractions analysis", err)
		}
	},
}
