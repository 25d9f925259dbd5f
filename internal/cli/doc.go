// Package cli wires together the Cobra command tree for the bot binary.
//
// It defines the root command and all subcommands (analyze, report, config,
// models, version), binds flags, reads configuration, invokes the analysis
// engine, and returns deterministic exit codes.
package cli
