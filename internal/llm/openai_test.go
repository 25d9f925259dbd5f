package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAI_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s, want /v1/chat/completions", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("expected no Authorization header without an API key")
		}

		resp := openaiResponse{
			Choices: []openaiChoice{{Message: openaiMessage{Role: "assistant", Content: "looks fine"}}},
		}
		resp.Usage.TotalTokens = 99
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	o := NewOpenAI(Options{Host: server.URL, Model: "local-model"})

	resp, err := o.Generate(context.Background(), Request{Prompt: "review", MaxTokens: 100})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if resp.Text != "looks fine" {
		t.Errorf("Text = %q", resp.Text)
	}
	if resp.TokensUsed != 99 {
		t.Errorf("TokensUsed = %d, want 99", resp.TokensUsed)
	}
}

func TestOpenAI_GenerateWithAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("missing or wrong Authorization header")
		}
		resp := openaiResponse{
			Choices: []openaiChoice{{Message: openaiMessage{Content: "ok"}}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	o := NewOpenAI(Options{Host: server.URL, Model: "m", APIKey: "test-key"})

	if _, err := o.Generate(context.Background(), Request{Prompt: "ping"}); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
}

func TestOpenAI_GenerateAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer server.Close()

	o := NewOpenAI(Options{Host: server.URL, Model: "m"})

	_, err := o.Generate(context.Background(), Request{Prompt: "x"})
	if !IsAuthError(err) {
		t.Errorf("err = %v, want auth error", err)
	}
}

func TestOpenAI_Stream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openaiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if !req.Stream {
			t.Error("streaming call should set stream=true")
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, frag := range []string{"all ", "good"} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", frag)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	o := NewOpenAI(Options{Host: server.URL, Model: "m"})

	var got string
	resp, err := o.Stream(context.Background(), Request{Prompt: "review"}, func(f string) error {
		got += f
		return nil
	})
	if err != nil {
		t.Fatalf("Stream error: %v", err)
	}
	if resp.Text != "all good" || got != "all good" {
		t.Errorf("Text = %q, callback saw %q; want %q", resp.Text, got, "all good")
	}
}

func TestNewOpenAI_NormalizesHost(t *testing.T) {
	o := NewOpenAI(Options{Host: "http://localhost:1234/v1/chat/completions/"})
	if o.url != "http://localhost:1234/v1/chat/completions" {
		t.Errorf("url = %q", o.url)
	}

	o = NewOpenAI(Options{Host: "http://localhost:1234/v1"})
	if o.url != "http://localhost:1234/v1/chat/completions" {
		t.Errorf("url = %q", o.url)
	}
}
