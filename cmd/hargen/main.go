// Command hargen generates hazard assessment reports from OHAS summary
// tables on the command line.
package main

import (
	"os"

	"github.com/alfieprojectsdev/har-automation/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
