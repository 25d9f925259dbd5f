package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.2.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitFailedFiles  = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "bot",
	Short: "Local AI code review for source trees",
	Long:  "bot walks a source tree, sends each matching file to a local LLM endpoint for review, and writes markdown reports under an analysis directory.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print bot version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "bot version %s\n", version)
	},
}
