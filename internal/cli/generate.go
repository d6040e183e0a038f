package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alfieprojectsdev/har-automation/internal/engine"
	"github.com/alfieprojectsdev/har-automation/internal/observability"
	"github.com/alfieprojectsdev/har-automation/internal/pipeline"
	"github.com/alfieprojectsdev/har-automation/internal/schema"
)

var (
	schemaPath string
	outputJSON bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate HARs from a summary-table file or stdin",
	Long: `Generate parses an OHAS summary table and renders one Hazard
Assessment Report per assessment row.

Reads from the given file, or from stdin when the argument is "-" or
omitted.

Example:
  hargen generate summary.txt
  pbpaste | hargen generate -
  hargen generate summary.txt --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&schemaPath, "schema", "", "rulebook file (default: embedded rulebook, or HARGEN_SCHEMA_PATH)")
	generateCmd.Flags().BoolVar(&outputJSON, "json", false, "emit reports as JSON instead of plain text")
	_ = viper.BindPFlag("schema_path", generateCmd.Flags().Lookup("schema"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	rules, err := loadSchema()
	if err != nil {
		return err
	}

	logger := cliLogger()
	metrics := observability.NewMetricsForTesting()
	gen := pipeline.New(engine.New(rules, logger, metrics), logger, metrics)

	reports, err := gen.GenerateReports(context.Background(), input)
	if err != nil {
		return err
	}

	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for i, r := range reports {
		if i > 0 {
			fmt.Println("================================================================")
		}
		fmt.Print(r.ReportText)
	}
	return nil
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// loadSchema resolves the rulebook: --schema flag, then
// HARGEN_SCHEMA_PATH, then the embedded default.
func loadSchema() (*schema.RuleSchema, error) {
	path := schemaPath
	if path == "" {
		path = viper.GetString("schema_path")
	}
	if path == "" {
		return schema.LoadDefault()
	}
	return schema.LoadFile(path)
}

// cliLogger logs to stderr so report text on stdout stays clean.
func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
