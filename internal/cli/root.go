package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "sigcache",
	Short: "Signature-gated file cache for derived data",
	Long:  "sigcache writes byte payloads into a content-addressed cache next to a source file, skipping rewrites while the content is unchanged within the refresh window.",
}

// Run executes the root command and returns a process exit code.
func Run() int {
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return 1
	}
	return 0
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print sigcache version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "sigcache version %s\n", version)
	},
}
