package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridaco/bot/internal/analyze"
)

// Sink forwards engine events into a running Bubble Tea program.
type Sink struct {
	p *tea.Program
}

// NewSink wraps a program.
func NewSink(p *tea.Program) *Sink {
	return &Sink{p: p}
}

var _ analyze.Sink = (*Sink)(nil)

func (s *Sink) RunStarted(total int) { s.p.Send(RunStartedMsg{Total: total}) }

func (s *Sink) FileStarted(rel string) { s.p.Send(FileStartedMsg{Rel: rel}) }

func (s *Sink) FileSkipped(rel, reason string) {
	s.p.Send(FileSkippedMsg{Rel: rel, Reason: reason})
}

func (s *Sink) Fragment(rel, text string) { s.p.Send(FragmentMsg{Rel: rel, Text: text}) }

func (s *Sink) FileCompleted(rel string, elapsed time.Duration) {
	s.p.Send(FileCompletedMsg{Rel: rel, Elapsed: elapsed})
}

func (s *Sink) FileFailed(rel string, err error) {
	s.p.Send(FileFailedMsg{Rel: rel, Err: err})
}

func (s *Sink) RunFinished(sum analyze.Summary) {
	s.p.Send(RunFinishedMsg{Summary: sum})
}

// Log routes a formatted log line to the log panel. Wire it to
// botlog.NewSink.
func (s *Sink) Log(line string) { s.p.Send(LogMsg{Line: line}) }
