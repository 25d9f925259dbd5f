package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const defaultOpenAIHost = "http://localhost:1234"

// OpenAI talks to any OpenAI-compatible chat completions endpoint, such as
// LM Studio or an Ollama server in compatibility mode.
type OpenAI struct {
	model  string
	apiKey string
	url    string
	client *http.Client
}

// NewOpenAI creates a client for an OpenAI-compatible server. The base URL
// comes from opts.Host or BOT_OPENAI_HOST; trailing API path segments are
// normalized away.
func NewOpenAI(opts Options) *OpenAI {
	host := opts.Host
	if host == "" {
		host = os.Getenv("BOT_OPENAI_HOST")
	}
	if host == "" {
		host = defaultOpenAIHost
	}
	host = strings.TrimRight(host, "/")
	host = strings.TrimSuffix(host, "/v1/chat/completions")
	host = strings.TrimSuffix(host, "/v1")

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("BOT_OPENAI_API_KEY")
	}

	return &OpenAI{
		model:  opts.Model,
		apiKey: apiKey,
		url:    host + "/v1/chat/completions",
		client: &http.Client{Timeout: opts.Timeout},
	}
}

func (o *OpenAI) Name() string { return "openai" }

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature *float64        `json:"temperature,omitempty"`
	Stream      bool            `json:"stream,omitempty"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
	Delta   openaiMessage `json:"delta"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
	Usage   struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

func (o *OpenAI) send(ctx context.Context, req Request, stream bool) (*http.Response, error) {
	body := openaiRequest{
		Model:     o.model,
		Messages:  []openaiMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens: req.MaxTokens,
		Stream:    stream,
	}
	if req.Temperature > 0 {
		body.Temperature = &req.Temperature
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		return nil, newStatusError(httpResp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return httpResp, nil
}

// Generate runs a blocking chat completion and returns the full text.
func (o *OpenAI) Generate(ctx context.Context, req Request) (Response, error) {
	httpResp, err := o.send(ctx, req, false)
	if err != nil {
		return Response{}, err
	}
	defer httpResp.Body.Close()

	var result openaiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&result); err != nil {
		return Response{}, fmt.Errorf("parsing response: %w", err)
	}
	if len(result.Choices) == 0 {
		return Response{}, fmt.Errorf("no choices in response")
	}

	return Response{
		Text:       result.Choices[0].Message.Content,
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

// Stream runs a streaming chat completion over server-sent events.
func (o *OpenAI) Stream(ctx context.Context, req Request, fn StreamFunc) (Response, error) {
	httpResp, err := o.send(ctx, req, true)
	if err != nil {
		return Response{}, err
	}
	defer httpResp.Body.Close()

	var text strings.Builder

	scanner := bufio.NewScanner(httpResp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk openaiResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return Response{}, fmt.Errorf("parsing stream event: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		fragment := chunk.Choices[0].Delta.Content
		if fragment == "" {
			continue
		}
		text.WriteString(fragment)
		if fn != nil {
			if err := fn(fragment); err != nil {
				return Response{}, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Response{}, fmt.Errorf("reading stream: %w", err)
	}

	return Response{Text: text.String()}, nil
}
