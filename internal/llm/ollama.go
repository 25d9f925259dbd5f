package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const defaultOllamaHost = "http://localhost:11434"

// Ollama talks to an Ollama server through its native generate API.
type Ollama struct {
	model  string
	host   string
	client *http.Client
}

// NewOllama creates an Ollama client. The host comes from opts.Host, then
// OLLAMA_HOST, then the localhost default.
func NewOllama(opts Options) *Ollama {
	host := opts.Host
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = defaultOllamaHost
	}
	host = strings.TrimRight(host, "/")

	return &Ollama{
		model:  opts.Model,
		host:   host,
		client: &http.Client{Timeout: opts.Timeout},
	}
}

func (o *Ollama) Name() string { return "ollama" }

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaChunk struct {
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	EvalCount int    `json:"eval_count"`
	Error     string `json:"error"`
}

func (o *Ollama) generateBody(req Request, stream bool) ([]byte, error) {
	options := make(map[string]any)
	if req.Temperature > 0 {
		options["temperature"] = req.Temperature
	}
	if req.NumCtx > 0 {
		options["num_ctx"] = req.NumCtx
	}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}

	body := ollamaRequest{
		Model:   o.model,
		Prompt:  req.Prompt,
		Stream:  stream,
		Options: options,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	return payload, nil
}

func (o *Ollama) post(ctx context.Context, path string, payload []byte) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.host+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		return nil, newStatusError(httpResp.StatusCode, strings.TrimSpace(string(body)))
	}
	return httpResp, nil
}

// Generate runs a blocking generation call and returns the full text.
func (o *Ollama) Generate(ctx context.Context, req Request) (Response, error) {
	payload, err := o.generateBody(req, false)
	if err != nil {
		return Response{}, err
	}

	httpResp, err := o.post(ctx, "/api/generate", payload)
	if err != nil {
		return Response{}, err
	}
	defer httpResp.Body.Close()

	var chunk ollamaChunk
	if err := json.NewDecoder(httpResp.Body).Decode(&chunk); err != nil {
		return Response{}, fmt.Errorf("parsing response: %w", err)
	}
	if chunk.Error != "" {
		return Response{}, fmt.Errorf("ollama: %s", chunk.Error)
	}

	return Response{Text: chunk.Response, TokensUsed: chunk.EvalCount}, nil
}

// Stream runs a streaming generation call. The server answers with
// newline-delimited JSON chunks; each fragment of text is handed to fn as it
// arrives and the concatenated result is returned.
func (o *Ollama) Stream(ctx context.Context, req Request, fn StreamFunc) (Response, error) {
	payload, err := o.generateBody(req, true)
	if err != nil {
		return Response{}, err
	}

	httpResp, err := o.post(ctx, "/api/generate", payload)
	if err != nil {
		return Response{}, err
	}
	defer httpResp.Body.Close()

	var text strings.Builder
	var tokens int

	dec := json.NewDecoder(httpResp.Body)
	for {
		var chunk ollamaChunk
		if err := dec.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Response{}, fmt.Errorf("parsing stream chunk: %w", err)
		}
		if chunk.Error != "" {
			return Response{}, fmt.Errorf("ollama: %s", chunk.Error)
		}
		if chunk.Response != "" {
			text.WriteString(chunk.Response)
			if fn != nil {
				if err := fn(chunk.Response); err != nil {
					return Response{}, err
				}
			}
		}
		if chunk.Done {
			tokens = chunk.EvalCount
			break
		}
	}

	return Response{Text: text.String(), TokensUsed: tokens}, nil
}

// ModelInfo describes one model reported by the server.
type ModelInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ListModels queries the server's tags endpoint for locally available models.
func (o *Ollama) ListModels(ctx context.Context) ([]ModelInfo, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", o.host+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(httpResp.Body)
		return nil, newStatusError(httpResp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result struct {
		Models []ModelInfo `json:"models"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return result.Models, nil
}
