package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"cliprobe/internal/status"
	"cliprobe/internal/tools"
)

// FetchFunc returns the current status, either probed locally or from a server.
type FetchFunc func(ctx context.Context) (map[tools.CLIType]status.Entry, error)

const zoneRefresh = "dash.btn.refresh"

type statusMsg struct {
	entries map[tools.CLIType]status.Entry
	err     error
	took    time.Duration
}

// DashModel is the bubbletea model of the status dashboard.
type DashModel struct {
	infos   []tools.ToolInfo
	fetch   FetchFunc
	timeout time.Duration
	source  string

	spin     spinner.Model
	checking bool
	entries  map[tools.CLIType]status.Entry
	err      error
	took     time.Duration
	checks   int

	width, height int
}

// NewDash builds a dashboard over infos. source labels where results come from.
func NewDash(infos []tools.ToolInfo, fetch FetchFunc, source string, timeout time.Duration) DashModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Vitesse.Primary)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return DashModel{infos: infos, fetch: fetch, source: source, timeout: timeout, spin: sp, checking: true, width: 80}
}

func (m DashModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *DashModel) refresh() tea.Cmd {
	m.checking = true
	fetch, timeout := m.fetch, m.timeout
	check := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		entries, err := fetch(ctx)
		return statusMsg{entries: entries, err: err, took: time.Since(start)}
	}
	return tea.Batch(m.spin.Tick, check)
}

func (m DashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.checking {
				cmd := m.refresh()
				return m, cmd
			}
		}
		return m, nil
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			if zone.Get(zoneRefresh).InBounds(msg) && !m.checking {
				cmd := m.refresh()
				return m, cmd
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case statusMsg:
		m.checking = false
		m.checks++
		m.took = msg.took
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
		}
		return m, nil
	case spinner.TickMsg:
		if !m.checking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m DashModel) View() string {
	var b strings.Builder
	if m.height == 0 || m.height >= 24 {
		b.WriteString(Logo(m.width, true))
		b.WriteString("\n")
	}
	rows := OrderRows(m.infos, m.entries)
	b.WriteString(StatusTable(rows))
	b.WriteString("\n\n")

	switch {
	case m.checking:
		b.WriteString(m.spin.View() + " probing CLIs…")
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(Vitesse.Red).Render(IconFail() + " " + m.err.Error()))
	default:
		b.WriteString(Dim().Render(fmt.Sprintf("%s checked in %s", IconClock(), m.took.Round(time.Millisecond))))
	}
	b.WriteString("\n\n")
	b.WriteString(zone.Mark(zoneRefresh, Button("refresh")))
	b.WriteString(Dim().Render("  r refresh · q quit"))
	b.WriteString("\n\n")
	b.WriteString(renderStatusBar(m.width, m.source, m.summary()))
	return zone.Scan(b.String())
}

func (m DashModel) summary() string {
	ready := 0
	for _, e := range m.entries {
		if e.Installed {
			ready++
		}
	}
	return fmt.Sprintf("%d/%d ready", ready, len(m.infos))
}

// renderStatusBar draws a single-line status bar with a left chip and right-aligned text.
func renderStatusBar(width int, left, right string) string {
	if width <= 0 {
		width = 80
	}
	chip := ChipStyle(Vitesse.Primary).Render("cliprobe")
	l := chip + " " + left
	lw := xansi.StringWidth(l)
	rw := xansi.StringWidth(right)
	if lw+rw+1 > width {
		l = xansi.Truncate(l, width-rw-1, "…")
		lw = xansi.StringWidth(l)
	}
	pad := width - lw - rw
	if pad < 1 {
		pad = 1
	}
	return StatusBarBase().Render(l + strings.Repeat(" ", pad) + right)
}
