// Package llm provides thin clients for local model-serving endpoints.
//
// Two backends implement the [Generator] interface: the native Ollama API
// (/api/generate, NDJSON streaming) and any OpenAI-compatible server such as
// LM Studio (/v1/chat/completions, SSE streaming). Both support blocking and
// incremental generation; streamed fragments are delivered through a
// [StreamFunc] callback and the full text is still returned at the end.
//
// HTTP 401/403 responses surface as auth errors distinguishable with
// [IsAuthError] so callers can map them to a distinct exit code. There is no
// retry logic; a failed request is reported once and the caller moves on.
package llm
