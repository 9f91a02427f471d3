package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// StatusMarkdown renders rows as a markdown report.
func StatusMarkdown(rows []Row) string {
	var b strings.Builder
	b.WriteString("# CLI status\n\n")
	b.WriteString("| CLI | State | Version | Models |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, r := range rows {
		ver := r.Entry.Version
		if ver == "" {
			ver = "-"
		}
		models := "-"
		if len(r.Entry.Models) > 0 {
			models = strings.Join(r.Entry.Models, ", ")
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.Name, StateLabel(r.Entry), mdEscape(ver), mdEscape(models))
	}
	var problems []Row
	for _, r := range rows {
		if r.Entry.Error != "" {
			problems = append(problems, r)
		}
	}
	if len(problems) > 0 {
		b.WriteString("\n## Problems\n\n")
		for _, r := range problems {
			fmt.Fprintf(&b, "- **%s**: %s\n", r.Name, mdEscape(r.Entry.Error))
		}
	}
	return b.String()
}

func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// RenderMarkdown renders md for the terminal. On renderer failure the raw text is returned.
func RenderMarkdown(md string, width int) string {
	// subtract the glamour gutter from the wrap width
	wrap := width - 2
	if wrap < 20 {
		wrap = 78
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(vitesseGlamour()),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// vitesseGlamour recolours glamour's dark style with the Vitesse palette.
func vitesseGlamour() ansi.StyleConfig {
	sp := func(s string) *string { return &s }
	bp := func(b bool) *bool { return &b }

	cfg := styles.DarkStyleConfig
	cfg.Document.Color = sp(hex(Vitesse.Text))
	cfg.Paragraph.Color = sp(hex(Vitesse.Text))
	cfg.Heading.Color = sp(hex(Vitesse.Blue))
	cfg.Heading.Bold = bp(true)
	cfg.H1.Color = sp(hex(Vitesse.Blue))
	cfg.H1.BackgroundColor = nil
	cfg.H2.Color = sp(hex(Vitesse.Blue))
	cfg.Strong.Color = sp(hex(Vitesse.Primary))
	cfg.Code.Color = sp(hex(Vitesse.Yellow))
	return cfg
}
