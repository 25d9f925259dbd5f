// Package prompt renders the review prompt sent to the model.
//
// The prompt is a fixed template: a <system> block describing the reviewer
// persona and the report sections to produce (Major Issues, Suggestions for
// Refactoring, Out-of-tech, Documentation, Notes), optionally extended with
// per-project instructions, followed by the file path and its contents in a
// fenced code block.
package prompt
