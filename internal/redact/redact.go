package redact

import (
	"path"
	"regexp"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for common secret shapes found in
// source trees.
var secretPatterns = []*regexp.Regexp{
	// API keys and secrets in assignments
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// Generic secrets, tokens, and passwords in assignments
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`),
	// GitHub and Slack tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	// Vendor API keys
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
}

// Secrets replaces detected secrets in text with a placeholder.
func Secrets(text string) string {
	for _, pat := range secretPatterns {
		text = pat.ReplaceAllString(text, placeholder)
	}
	return text
}

// SensitivePath reports whether a relative file path matches any of the
// configured glob patterns for files whose entire contents must not leave
// the machine (env files, key material).
func SensitivePath(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		if ok, err := path.Match(pattern, rel); err == nil && ok {
			return true
		}
		// Patterns like "**/.env" should also match by basename.
		if ok, err := path.Match(path.Base(pattern), base); err == nil && ok {
			return true
		}
	}
	return false
}

// Content applies both path and pattern redaction. A sensitive path yields a
// single placeholder body; otherwise secrets are scrubbed in place.
func Content(rel, text string, enabled bool, sensitivePaths []string) string {
	if !enabled {
		return text
	}
	if SensitivePath(rel, sensitivePaths) {
		return placeholder
	}
	return Secrets(text)
}
