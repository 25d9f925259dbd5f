// Package tui implements the interactive run display.
//
// The Bubble Tea model renders three stacked panes: a progress bar with the
// current file and counts, a scrolling log panel, and a live preview of the
// tokens streaming back from the model for the file under review. Engine
// events arrive as messages via [Sink], which adapts [analyze.Sink] onto
// program.Send. Pressing q, esc, or ctrl+c cancels the run context and
// quits.
package tui
