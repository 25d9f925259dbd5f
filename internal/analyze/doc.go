// Package analyze contains the run engine that drives a review pass.
//
// An [Engine] discovers candidate files (scan + ignore rules, minus the
// report directory itself), then processes them strictly one at a time: read,
// redact, build the prompt, call the model, write the report. Progress is
// reported through the [Sink] interface so the same engine serves both the
// TUI and plain-output modes; [NopSink] discards everything.
//
// Per-file failures are logged and counted but never abort the run. Each run
// carries a UUID that tags every log line, and finishes with a [Summary] of
// analyzed, skipped, and failed counts.
package analyze
