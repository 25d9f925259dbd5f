package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridaco/bot/internal/config"
	"github.com/gridaco/bot/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect models on the inference server",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List models available on the configured server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("", buildOverrides())
		if err != nil {
			return err
		}

		// The tags endpoint is Ollama-specific.
		if cfg.Provider != "" && cfg.Provider != "ollama" {
			fmt.Fprintf(os.Stderr, "Model listing requires the ollama provider (configured: %s)\n", cfg.Provider)
			exitCode = ExitUsageError
			return nil
		}

		client := llm.NewOllama(llm.Options{
			Host:    cfg.Host,
			Timeout: 30 * time.Second,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		models, err := client.ListModels(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot reach server: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if len(models) == 0 {
			fmt.Fprintln(os.Stdout, "No models installed. Pull one with: ollama pull <model>")
			return nil
		}
		for _, m := range models {
			fmt.Fprintf(os.Stdout, "%-40s %6.1f GB\n", m.Name, float64(m.Size)/1e9)
		}
		return nil
	},
}

var modelsDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate the configured provider and model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("", buildOverrides())
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Checking %s (%s)...\n", cfg.Provider, cfg.Model)

		gen, err := llm.New(cfg.Provider, llm.Options{
			Host:    cfg.Host,
			Model:   cfg.Model,
			APIKey:  cfg.APIKey,
			Timeout: 60 * time.Second,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if _, err := gen.Generate(ctx, llm.Request{Prompt: "Respond with exactly: ok", MaxTokens: 10}); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
			if llm.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		fmt.Fprintln(os.Stdout, "OK")
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsDoctorCmd)

	for _, cmd := range []*cobra.Command{modelsListCmd, modelsDoctorCmd} {
		cmd.Flags().StringVar(&flagProvider, "provider", "", "Inference provider (ollama, openai)")
		cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
		cmd.Flags().StringVar(&flagHost, "host", "", "Inference server base URL")
	}
}
