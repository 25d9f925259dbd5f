// Package botlog builds the zap loggers used across the tool.
//
// [New] returns a console logger on stderr for plain runs. [NewSink] routes
// complete log lines to a callback instead, which is how log output reaches
// the TUI's log panel without corrupting the alternate screen.
package botlog
