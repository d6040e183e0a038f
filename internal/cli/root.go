// Package cli implements the hargen command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hargen",
	Short: "Generate hazard assessment reports from OHAS summary tables",
	Long: `hargen converts copy-pasted OHAS hazard summary tables into
standardized Hazard Assessment Reports (HARs).

It accepts the native OHAS copy-paste layout, pipe-delimited markdown
tables, tab-separated values, and single-record label:value text, and
renders one report per assessment row.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hargen v0.3.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in environment variables that match HARGEN_*
func initConfig() {
	viper.SetEnvPrefix("HARGEN")
	viper.AutomaticEnv()
}
