package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridaco/bot/internal/analyze"
	"github.com/gridaco/bot/internal/botlog"
	"github.com/gridaco/bot/internal/config"
	"github.com/gridaco/bot/internal/llm"
	"github.com/gridaco/bot/internal/report"
	"github.com/gridaco/bot/internal/tui"
)

var (
	flagPattern   string
	flagOverwrite bool
	flagProvider  string
	flagModel     string
	flagHost      string
	flagOutDir    string
	flagPlain     bool
	flagDryRun    bool
	flagNoRedact  bool
	flagDebug     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <directory>",
	Short: "Review every matching file under a directory",
	Long:  "Walk the directory, filter files by suffix and ignore rules, review each with the configured model, and write reports under the analysis directory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("not a directory: %s", root)
		}

		cfg, err := config.Load(root, buildOverrides())
		if err != nil {
			return err
		}
		if flagNoRedact {
			fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
		}

		runAnalyze(root, cfg)
		return nil
	},
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagPattern != "" {
		m["pattern"] = flagPattern
	}
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagHost != "" {
		m["host"] = flagHost
	}
	if flagOutDir != "" {
		m["outDir"] = flagOutDir
	}
	if flagNoRedact {
		m["noRedact"] = "true"
	}
	return m
}

func runAnalyze(root string, cfg config.Config) {
	fsys := osfs.New(root)
	store := report.NewStore(fsys, cfg.OutDir)

	gen, err := llm.New(cfg.Provider, llm.Options{
		Host:    cfg.Host,
		Model:   cfg.Model,
		APIKey:  cfg.APIKey,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	if flagDryRun {
		eng := analyze.New(fsys, store, gen, cfg, nil, analyze.Options{})
		files, err := eng.Discover()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		for _, f := range files {
			fmt.Fprintln(os.Stdout, f)
		}
		fmt.Fprintf(os.Stderr, "%d files match pattern %q\n", len(files), cfg.Pattern)
		return
	}

	var sum analyze.Summary
	if flagPlain || !stdoutIsTerminal() {
		sum, err = runPlain(fsys, store, gen, cfg)
	} else {
		sum, err = runTUI(fsys, store, gen, cfg)
	}
	if err != nil {
		if llm.IsAuthError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitAuthError
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if sum.Failed > 0 {
		exitCode = ExitFailedFiles
	}
}

// stdoutIsTerminal reports whether stdout is attached to a character device.
// Redirected output falls back to plain mode so logs stay parseable.
func stdoutIsTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func engineOptions(streaming bool) analyze.Options {
	return analyze.Options{
		Overwrite: flagOverwrite,
		Streaming: streaming,
	}
}

// runPlain executes the run with console logging and a blocking provider
// call per file.
func runPlain(fsys billy.Filesystem, store *report.Store, gen llm.Generator, cfg config.Config) (analyze.Summary, error) {
	logger := botlog.New(flagDebug)
	defer logger.Sync()

	eng := analyze.New(fsys, store, gen, cfg, logger, engineOptions(false))
	return eng.Run(context.Background(), nil)
}

// runTUI executes the run inside the Bubble Tea program, streaming model
// output into the preview pane.
func runTUI(fsys billy.Filesystem, store *report.Store, gen llm.Generator, cfg config.Config) (analyze.Summary, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(tui.NewModel(cancel))
	sink := tui.NewSink(p)
	logger := botlog.NewSink(sink.Log, flagDebug)
	defer logger.Sync()

	type result struct {
		sum analyze.Summary
		err error
	}
	done := make(chan result, 1)

	go func() {
		eng := analyze.New(fsys, store, gen, cfg, logger, engineOptions(true))
		sum, err := eng.Run(ctx, sink)
		done <- result{sum, err}
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return analyze.Summary{}, fmt.Errorf("terminal UI: %w", err)
	}

	// The program quits either on RunFinished or on user cancel; the engine
	// goroutine always delivers.
	res := <-done
	if res.err != nil && ctx.Err() != nil {
		// User aborted; partial work is not an error.
		fmt.Fprintln(os.Stderr, "Run canceled.")
		return res.sum, nil
	}
	if res.err != nil {
		return res.sum, res.err
	}

	logger.Info("all files processed",
		zap.Int("analyzed", res.sum.Analyzed),
		zap.Int("skipped", res.sum.Skipped),
		zap.Int("failed", res.sum.Failed))
	fmt.Fprintf(os.Stderr, "Done: %d analyzed, %d skipped, %d failed in %s\n",
		res.sum.Analyzed, res.sum.Skipped, res.sum.Failed, res.sum.Elapsed.Round(time.Second))
	return res.sum, nil
}

func init() {
	analyzeCmd.Flags().StringVar(&flagPattern, "pattern", "", "File suffix to process (e.g., .ts)")
	analyzeCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "Overwrite existing analysis reports")
	analyzeCmd.Flags().StringVar(&flagProvider, "provider", "", "Inference provider (ollama, openai)")
	analyzeCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	analyzeCmd.Flags().StringVar(&flagHost, "host", "", "Inference server base URL")
	analyzeCmd.Flags().StringVar(&flagOutDir, "out-dir", "", "Report directory relative to the scan root")
	analyzeCmd.Flags().BoolVar(&flagPlain, "plain", false, "Disable the terminal UI, log to stderr")
	analyzeCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "List matching files and exit")
	analyzeCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	analyzeCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}
