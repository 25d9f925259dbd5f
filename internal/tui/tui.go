package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gridaco/bot/internal/analyze"
)

const (
	maxLogLines     = 100
	streamPaneLines = 8
)

// Messages bridged from the engine sink into the Bubble Tea loop.
type (
	// RunStartedMsg carries the total file count.
	RunStartedMsg struct{ Total int }
	// FileStartedMsg marks the beginning of one file's analysis.
	FileStartedMsg struct{ Rel string }
	// FileSkippedMsg marks a file skipped before analysis.
	FileSkippedMsg struct{ Rel, Reason string }
	// FragmentMsg carries one streamed text fragment.
	FragmentMsg struct{ Rel, Text string }
	// FileCompletedMsg marks a finished file.
	FileCompletedMsg struct {
		Rel     string
		Elapsed time.Duration
	}
	// FileFailedMsg marks a failed file.
	FileFailedMsg struct {
		Rel string
		Err error
	}
	// LogMsg appends one line to the log panel.
	LogMsg struct{ Line string }
	// RunFinishedMsg ends the program.
	RunFinishedMsg struct{ Summary analyze.Summary }
)

// Styles holds the lipgloss styles for the three panes.
type Styles struct {
	Panel  lipgloss.Style
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
	Accent lipgloss.Style
}

// DefaultStyles returns the standard look.
func DefaultStyles() Styles {
	return Styles{
		Panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	}
}

// Model renders a progress bar, a scrolling log panel, and a live preview of
// the in-flight streamed review.
type Model struct {
	prog   progress.Model
	spin   spinner.Model
	styles Styles

	cancel context.CancelFunc

	total   int
	done    int
	failed  int
	current string
	start   time.Time

	logs    []string
	stream  []string
	summary *analyze.Summary

	width  int
	height int
}

// NewModel creates the analyze view. cancel is invoked when the user quits
// mid-run.
func NewModel(cancel context.CancelFunc) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		prog:   progress.New(progress.WithDefaultGradient()),
		spin:   sp,
		styles: DefaultStyles(),
		cancel: cancel,
		start:  time.Now(),
		width:  80,
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// Update handles engine events, resizes, and keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prog.Width = msg.Width - 30
		if m.prog.Width < 10 {
			m.prog.Width = 10
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case RunStartedMsg:
		m.total = msg.Total
		m.start = time.Now()

	case FileStartedMsg:
		m.current = msg.Rel
		m.stream = nil

	case FragmentMsg:
		m.appendFragment(msg.Text)

	case FileSkippedMsg:
		m.done++

	case FileCompletedMsg:
		m.done++
		m.current = ""

	case FileFailedMsg:
		m.done++
		m.failed++
		m.current = ""

	case LogMsg:
		m.logs = append(m.logs, msg.Line)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}

	case RunFinishedMsg:
		s := msg.Summary
		m.summary = &s
		return m, tea.Quit
	}

	return m, nil
}

// appendFragment folds a streamed token into the line buffer, keeping only
// the visible tail.
func (m *Model) appendFragment(text string) {
	if len(m.stream) == 0 {
		m.stream = []string{""}
	}
	parts := strings.Split(text, "\n")
	m.stream[len(m.stream)-1] += parts[0]
	m.stream = append(m.stream, parts[1:]...)
	if len(m.stream) > streamPaneLines {
		m.stream = m.stream[len(m.stream)-streamPaneLines:]
	}
}

// View renders the three stacked panes.
func (m Model) View() string {
	w := m.width - 4
	if w < 20 {
		w = 20
	}

	var progLine string
	if m.total > 0 {
		pct := float64(m.done) / float64(m.total)
		progLine = fmt.Sprintf("%s %d/%d %s %3.0f%%  %s",
			m.spin.View(), m.done, m.total,
			m.prog.ViewAs(pct), pct*100,
			m.styles.Muted.Render(time.Since(m.start).Round(time.Second).String()))
	} else {
		progLine = fmt.Sprintf("%s scanning files...", m.spin.View())
	}
	progressPane := m.styles.Panel.Width(w).Render(
		m.styles.Title.Render("Analyzing files") + "\n" + progLine)

	logPane := m.styles.Panel.Width(w).Render(
		m.styles.Title.Render("Logs") + "\n" + m.renderLogs())

	streamTitle := "AI Streaming Output"
	if m.current != "" {
		streamTitle = "AI Streaming: " + m.current
	}
	streamPane := m.styles.Panel.Width(w).Render(
		m.styles.Title.Render(streamTitle) + "\n" + strings.Join(m.tailStream(), "\n"))

	view := lipgloss.JoinVertical(lipgloss.Left, progressPane, logPane, streamPane)
	if m.summary != nil {
		view += "\n" + m.renderSummary()
	}
	return view + "\n"
}

func (m Model) renderLogs() string {
	visible := m.logHeight()
	logs := m.logs
	if len(logs) > visible {
		logs = logs[len(logs)-visible:]
	}
	if len(logs) == 0 {
		return m.styles.Muted.Render("waiting...")
	}
	return strings.Join(logs, "\n")
}

// logHeight gives the log pane whatever vertical space the fixed panes leave.
func (m Model) logHeight() int {
	h := m.height - streamPaneLines - 10
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) tailStream() []string {
	if len(m.stream) == 0 {
		return []string{m.styles.Muted.Render("idle")}
	}
	return m.stream
}

func (m Model) renderSummary() string {
	s := m.summary
	line := fmt.Sprintf("Done: %d analyzed, %d skipped, %d failed in %s",
		s.Analyzed, s.Skipped, s.Failed, s.Elapsed.Round(time.Second))
	if s.Failed > 0 {
		return m.styles.Error.Render(line)
	}
	return m.styles.Accent.Render(line)
}

// Summary returns the final run summary once the program has quit, or nil if
// the run was interrupted.
func (m Model) Summary() *analyze.Summary {
	return m.summary
}
