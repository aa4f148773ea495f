package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pgcsv",
	Short: "Chunked CSV loader for PostgreSQL",
	Long: `pgcsv reads a delimited file in fixed-size batches, normalizes its
date/time columns and loads it into a PostgreSQL table.

The first non-empty batch replaces the destination table (schema and contents);
every later batch is appended to it.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection or probe failed
  12 - Source file missing or unreadable
  13 - Malformed row or header
  14 - Expected column missing
  15 - Write into the destination table failed
  16 - Replacement of the existing table was declined`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	// -h is the PostgreSQL host shorthand; help stays on --help only.
	rootCmd.PersistentFlags().Bool("help", false, "Help for pgcsv")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
