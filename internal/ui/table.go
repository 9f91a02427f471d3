package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	xansi "github.com/charmbracelet/x/ansi"

	"cliprobe/internal/status"
	"cliprobe/internal/tools"
)

// Row is one display line of the status table.
type Row struct {
	ID      tools.CLIType
	Name    string
	Entry   status.Entry
	Present bool
}

// OrderRows lines up entries with the registry order. CLIs that were not
// reported still get a row so the table shape stays stable.
func OrderRows(infos []tools.ToolInfo, entries map[tools.CLIType]status.Entry) []Row {
	rows := make([]Row, 0, len(infos))
	for _, info := range infos {
		e, ok := entries[info.ID]
		rows = append(rows, Row{ID: info.ID, Name: info.DisplayName, Entry: e, Present: ok})
	}
	return rows
}

// StateLabel summarises an entry in a word.
func StateLabel(e status.Entry) string {
	switch {
	case e.Installed:
		return "ready"
	case e.Available:
		return "not configured"
	default:
		return "missing"
	}
}

const maxErrWidth = 48

// StatusTable renders rows as a bordered table.
func StatusTable(rows []Row) string {
	ok := lipgloss.NewStyle().Foreground(Vitesse.Primary)
	warn := lipgloss.NewStyle().Foreground(Vitesse.Yellow)
	bad := lipgloss.NewStyle().Foreground(Vitesse.Red)

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		ver := r.Entry.Version
		if ver == "" {
			ver = "-"
		}
		errText := xansi.Truncate(r.Entry.Error, maxErrWidth, "…")
		data = append(data, []string{r.Name, StateLabel(r.Entry), ver, errText})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Vitesse.Border)).
		Headers("CLI", "STATE", "VERSION", "ERROR").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Bold(true).Foreground(Vitesse.Blue)
			}
			if col != 1 || row < 0 || row >= len(rows) {
				return base
			}
			e := rows[row].Entry
			switch {
			case e.Installed:
				return base.Inherit(ok)
			case e.Available:
				return base.Inherit(warn)
			default:
				return base.Inherit(bad)
			}
		})
	return t.String()
}
