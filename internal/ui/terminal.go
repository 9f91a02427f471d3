package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Level tags a terminal message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelSuccess:
		return "SUCCESS"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l Level) style() lipgloss.Style {
	s := lipgloss.NewStyle()
	switch l {
	case LevelDebug:
		return s.Foreground(Vitesse.Cyan).Faint(true)
	case LevelSuccess:
		return s.Foreground(Vitesse.Primary)
	case LevelWarning:
		return s.Foreground(Vitesse.Yellow)
	case LevelError:
		return s.Foreground(Vitesse.Red)
	default:
		return s.Foreground(Vitesse.Text)
	}
}

// Terminal is the human-facing output of the CLI commands. Structured
// diagnostics go to system.Logger; this is for results meant to be read.
type Terminal struct {
	Out   io.Writer
	Width int
	// ShowDebug enables LevelDebug lines.
	ShowDebug bool
}

// NewTerminal writes to w (stdout when nil).
func NewTerminal(w io.Writer) *Terminal {
	if w == nil {
		w = os.Stdout
	}
	return &Terminal{Out: w, Width: 80}
}

// Log prints "[LEVEL] [component] msg".
func (t *Terminal) Log(level Level, msg, component string) {
	if level == LevelDebug && !t.ShowDebug {
		return
	}
	line := "[" + level.String() + "] "
	if component != "" {
		line += "[" + component + "] "
	}
	fmt.Fprintln(t.Out, level.style().Render(line+msg))
}

func (t *Terminal) Debug(msg, component string)   { t.Log(LevelDebug, msg, component) }
func (t *Terminal) Info(msg, component string)    { t.Log(LevelInfo, msg, component) }
func (t *Terminal) Success(msg, component string) { t.Log(LevelSuccess, msg, component) }
func (t *Terminal) Warning(msg, component string) { t.Log(LevelWarning, msg, component) }
func (t *Terminal) Error(msg, component string)   { t.Log(LevelError, msg, component) }

// Panel draws content in a rounded box with an optional title line.
func (t *Terminal) Panel(content, title string, color lipgloss.Color) {
	if color == "" {
		color = Vitesse.Blue
	}
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(1, 2)
	body := content
	if title != "" {
		body = AccentBold().Render(title) + "\n\n" + content
	}
	fmt.Fprintln(t.Out, box.Render(body))
}

// Logo prints the banner.
func (t *Terminal) Logo() {
	fmt.Fprintln(t.Out)
	fmt.Fprint(t.Out, Logo(t.Width, true))
	fmt.Fprintln(t.Out)
}

// KV is one status line item.
type KV struct {
	Key, Value string
}

// StatusLine prints keys above their values, column aligned.
func (t *Terminal) StatusLine(items ...KV) {
	if len(items) == 0 {
		return
	}
	cols := make([]string, 0, len(items))
	key := lipgloss.NewStyle().Foreground(Vitesse.Cyan).Faint(true)
	val := lipgloss.NewStyle().Foreground(Vitesse.Text)
	for _, it := range items {
		cols = append(cols, lipgloss.NewStyle().PaddingRight(2).Render(
			lipgloss.JoinVertical(lipgloss.Left, key.Render(it.Key), val.Render(it.Value)),
		))
	}
	fmt.Fprintln(t.Out, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
}

// ConnectionStatus reports a server state change.
func (t *Terminal) ConnectionStatus(addr, state string) {
	t.Info(fmt.Sprintf("server %s at %s", state, addr), "HTTP")
}

// OperationResult prints "<op> completed" or "<op> failed", with optional details.
func (t *Terminal) OperationResult(op string, ok bool, details string) {
	msg := op + " failed"
	level := LevelError
	if ok {
		msg = op + " completed"
		level = LevelSuccess
	}
	if d := strings.TrimSpace(details); d != "" {
		msg += ": " + d
	}
	t.Log(level, msg, "")
}
