package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/gridaco/bot/internal/config"
	"github.com/gridaco/bot/internal/report"
)

var flagReportDir string

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Render a stored analysis report in the terminal",
	Long:  "Render the analysis report for a source file. The argument is the file's path relative to the scan root (see --dir).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagReportDir, nil)
		if err != nil {
			return err
		}

		store := report.NewStore(osfs.New(flagReportDir), cfg.OutDir)
		text, err := store.Read(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("creating renderer: %w", err)
		}

		out, err := renderer.Render(text)
		if err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
		fmt.Fprint(os.Stdout, out)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&flagReportDir, "dir", ".", "Scan root the report was generated under")
}
