// Package redact removes secrets from source file contents before they are
// sent to an inference endpoint.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS access key IDs, bearer tokens, and vendor tokens
// (OpenAI, GitHub, Slack).
//
// Path-based redaction is also supported: files whose paths match configured
// glob patterns have their entire content replaced with [REDACTED] rather
// than being scanned line by line.
package redact
