package llm

import (
	"context"
	"fmt"
	"time"
)

// Request carries one generation call.
type Request struct {
	Prompt      string
	Temperature float64
	NumCtx      int
	MaxTokens   int
}

// Response is the model's completed output.
type Response struct {
	Text       string
	TokensUsed int
}

// StreamFunc receives text fragments as the model produces them. Returning a
// non-nil error aborts the stream.
type StreamFunc func(fragment string) error

// Generator is the provider abstraction. Generate blocks until the full text
// is available; Stream delivers fragments incrementally and returns the
// concatenated result.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
	Stream(ctx context.Context, req Request, fn StreamFunc) (Response, error)
	Name() string
}

// Options configures a provider client.
type Options struct {
	Host    string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// DefaultTimeout bounds a single generation call. Local models routinely take
// minutes on large files.
const DefaultTimeout = 300 * time.Second

// New creates a provider by name.
func New(provider string, opts Options) (Generator, error) {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	switch provider {
	case "", "ollama":
		return NewOllama(opts), nil
	case "openai", "lmstudio":
		return NewOpenAI(opts), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
