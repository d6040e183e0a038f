package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// sampleInput is a two-row native-layout table in the shape OHAS
// produces when its results page is copy-pasted.
const sampleInput = `Hazard Assessment
Displaying 1-2 of 2 results.
Assessment
Category
Feature Type
Location
Active Fault
Liquefaction
Landslide
Tsunami
Nearest Active Volcano
Lahar
Pyroclastic Flow
Lava Flow
Ballistic Projectile
24777	Earthquake	Polygon	121.05,14.55	Safe; Approximately 7.1 km west of Valley Fault System	High Potential	Safe	--	--	--	--	--	--
24778	Volcano	Polygon	120.99,14.01	--	--	--	--	Approximately 12.4 km north of Taal Volcano	Prone	Prone to pyroclastic density currents	Safe	Safe
No Files Attached
`

// sampleCmd represents the sample command
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print example summary-table input",
	Long: `Sample prints a two-row example of the native OHAS copy-paste
layout, suitable for piping back into generate:

  hargen sample | hargen generate -`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(sampleInput)
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
