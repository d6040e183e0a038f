package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfieprojectsdev/har-automation/internal/schema"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [rulebook.yaml]",
	Short: "Validate a rulebook file",
	Long: `Validate loads a rulebook and checks its structure: required
top-level keys and the fixed hazard key set for each category. With no
argument it validates the embedded default rulebook.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var (
		rules *schema.RuleSchema
		err   error
		label = "embedded rulebook"
	)

	if len(args) == 1 {
		label = args[0]
		rules, err = schema.LoadFile(args[0])
	} else {
		rules, err = schema.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("validate %s: %w", label, err)
	}

	fmt.Printf("%s: valid (%d seismic rules, %d volcanic rules, version %s)\n",
		label, len(rules.SeismicRules), len(rules.VolcanicRules), rules.Metadata["version"])
	return nil
}
