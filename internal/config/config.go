package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RepoFile is the per-repository config file looked up at the scan root.
const RepoFile = "bot.yaml"

// Config represents the effective bot configuration.
type Config struct {
	Provider       string       `json:"provider" yaml:"provider"`
	Model          string       `json:"model" yaml:"model"`
	Host           string       `json:"host,omitempty" yaml:"host,omitempty"`
	APIKey         string       `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	Pattern        string       `json:"pattern" yaml:"pattern"`
	OutDir         string       `json:"outDir" yaml:"outDir"`
	IgnoreFiles    []string     `json:"ignoreFiles" yaml:"ignoreFiles"`
	Instructions   string       `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Temperature    float64      `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	NumCtx         int          `json:"numCtx,omitempty" yaml:"numCtx,omitempty"`
	MaxTokens      int          `json:"maxTokens,omitempty" yaml:"maxTokens,omitempty"`
	TimeoutSeconds int          `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	Redact         RedactConfig `json:"redact" yaml:"redact"`
}

// RedactConfig controls secret scrubbing of uploaded file contents.
type RedactConfig struct {
	Secrets bool     `json:"secrets" yaml:"secrets"`
	Paths   []string `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:       "ollama",
		Model:          "gemma3:27b",
		Pattern:        ".ts",
		OutDir:         "analysis",
		IgnoreFiles:    []string{".gitignore", ".botignore"},
		NumCtx:         16384,
		TimeoutSeconds: 300,
		Redact: RedactConfig{
			Secrets: true,
			Paths:   []string{"**/.env", "**/*secrets*"},
		},
	}
}

// Dir returns the platform-appropriate config directory for bot.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bot"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "bot"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "bot"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "bot"), nil
	default:
		return filepath.Join(home, ".config", "bot"), nil
	}
}

// Path returns the full path to the global config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads the global config file. Returns a zero Config and nil error
// if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// LoadRepoFile loads bot.yaml from the scan root. Returns a zero Config and
// nil error if the file doesn't exist.
func LoadRepoFile(root string) (Config, error) {
	data, err := os.ReadFile(filepath.Join(root, RepoFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading %s: %w", RepoFile, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", RepoFile, err)
	}
	return cfg, nil
}

// Save writes the config to the global config file.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging:
// defaults <- global file <- repo bot.yaml <- env <- overrides.
// root is the scan root; empty skips the repo file. The overrides map comes
// from CLI flags (only non-zero values should be set).
func Load(root string, overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	merge(&cfg, fileCfg)

	if root != "" {
		repoCfg, err := LoadRepoFile(root)
		if err != nil {
			return Config{}, err
		}
		merge(&cfg, repoCfg)
	}

	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func merge(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Host != "" {
		dst.Host = src.Host
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.Pattern != "" {
		dst.Pattern = src.Pattern
	}
	if src.OutDir != "" {
		dst.OutDir = src.OutDir
	}
	if len(src.IgnoreFiles) > 0 {
		dst.IgnoreFiles = src.IgnoreFiles
	}
	if src.Instructions != "" {
		dst.Instructions = src.Instructions
	}
	if src.Temperature > 0 {
		dst.Temperature = src.Temperature
	}
	if src.NumCtx > 0 {
		dst.NumCtx = src.NumCtx
	}
	if src.MaxTokens > 0 {
		dst.MaxTokens = src.MaxTokens
	}
	if src.TimeoutSeconds > 0 {
		dst.TimeoutSeconds = src.TimeoutSeconds
	}
	if len(src.Redact.Paths) > 0 {
		dst.Redact.Paths = src.Redact.Paths
	}
	// A zero-value bool in a partially written file must not silently turn
	// redaction off; only the --no-redact override does that.
	dst.Redact.Secrets = dst.Redact.Secrets || src.Redact.Secrets
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("BOT_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("BOT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("BOT_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("BOT_PATTERN"); v != "" {
		cfg.Pattern = v
	}
	if v := os.Getenv("BOT_OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv("BOT_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["host"]; ok && v != "" {
		cfg.Host = v
	}
	if v, ok := overrides["pattern"]; ok && v != "" {
		cfg.Pattern = v
	}
	if v, ok := overrides["outDir"]; ok && v != "" {
		cfg.OutDir = v
	}
	if v, ok := overrides["noRedact"]; ok && v == "true" {
		cfg.Redact.Secrets = false
	}
}

// SetField sets a single config field by key name. Returns an error if key is
// unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "host":
		cfg.Host = value
	case "pattern":
		cfg.Pattern = value
	case "outDir":
		cfg.OutDir = value
	case "instructions":
		cfg.Instructions = value
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number: %w", err)
		}
		cfg.Temperature = f
	case "numCtx":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("numCtx must be an integer: %w", err)
		}
		cfg.NumCtx = n
	case "maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTokens must be an integer: %w", err)
		}
		cfg.MaxTokens = n
	case "timeoutSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeoutSeconds must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
