package cli

import (
	"testing"
)

func TestBuildOverrides(t *testing.T) {
	// Reset shared flag state.
	flagPattern, flagModel, flagProvider, flagHost, flagOutDir = "", "", "", "", ""
	flagNoRedact = false

	m := buildOverrides()
	if len(m) != 0 {
		t.Errorf("overrides = %v, want empty with no flags set", m)
	}

	flagPattern = ".go"
	flagModel = "codellama"
	flagNoRedact = true
	defer func() {
		flagPattern, flagModel = "", ""
		flagNoRedact = false
	}()

	m = buildOverrides()
	if m["pattern"] != ".go" {
		t.Errorf("pattern override = %q", m["pattern"])
	}
	if m["model"] != "codellama" {
		t.Errorf("model override = %q", m["model"])
	}
	if m["noRedact"] != "true" {
		t.Errorf("noRedact override = %q", m["noRedact"])
	}
}

func TestAnalyzeCmd_RequiresDirectory(t *testing.T) {
	err := analyzeCmd.Args(analyzeCmd, []string{})
	if err == nil {
		t.Error("analyze should require a directory argument")
	}
	if err := analyzeCmd.Args(analyzeCmd, []string{"dir"}); err != nil {
		t.Errorf("one argument should be accepted: %v", err)
	}
}

func TestModelsList_RequiresOllamaProvider(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	flagProvider = "openai"
	defer func() {
		flagProvider = ""
		exitCode = ExitSuccess
	}()

	if err := modelsListCmd.RunE(modelsListCmd, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if exitCode != ExitUsageError {
		t.Errorf("exitCode = %d, want %d for non-ollama provider", exitCode, ExitUsageError)
	}
}

func TestCommandWiring(t *testing.T) {
	for _, cmd := range []struct {
		name string
		use  string
	}{
		{"analyze", analyzeCmd.Use},
		{"report", reportCmd.Use},
		{"config", configCmd.Use},
		{"models", modelsCmd.Use},
		{"version", versionCmd.Use},
	} {
		if cmd.use == "" {
			t.Errorf("command %s has empty Use", cmd.name)
		}
	}

	if len(configCmd.Commands()) != 4 {
		t.Errorf("config has %d subcommands, want init/set/show/path", len(configCmd.Commands()))
	}
	if len(modelsCmd.Commands()) != 2 {
		t.Errorf("models has %d subcommands, want list/doctor", len(modelsCmd.Commands()))
	}
}
