package ui

import "github.com/charmbracelet/lipgloss"

// Design centralizes the terminal color palette and common styles.
//
// Palette is based on Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
type designTheme struct {
	Primary lipgloss.Color // #4d9375
	Blue    lipgloss.Color // #6394bf
	Yellow  lipgloss.Color // #e6cc77
	Cyan    lipgloss.Color // #5eaab5
	Red     lipgloss.Color // #cb7676

	Text      lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color

	Border   lipgloss.Color
	OnAccent lipgloss.Color

	BarFG lipgloss.AdaptiveColor
	BarBG lipgloss.AdaptiveColor
}

// Vitesse is the global design theme.
var Vitesse = designTheme{
	Primary: lipgloss.Color("#4d9375"),
	Blue:    lipgloss.Color("#6394bf"),
	Yellow:  lipgloss.Color("#e6cc77"),
	Cyan:    lipgloss.Color("#5eaab5"),
	Red:     lipgloss.Color("#cb7676"),

	Text:      lipgloss.Color("#dbd7caee"),
	Secondary: lipgloss.Color("#bfbaaa"),
	Muted:     lipgloss.Color("#dedcd590"),

	Border:   lipgloss.Color("#3a3a3a"),
	OnAccent: lipgloss.Color("#222"),

	BarFG: lipgloss.AdaptiveColor{Light: "#343433", Dark: "#bfbaaa"},
	BarBG: lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#222"},
}

// AccentBold returns a bold style using the primary accent color.
func AccentBold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary)
}

// Dim renders secondary information.
func Dim() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Muted)
}

// ChipStyle returns a style for colored nuggets in the status bar.
func ChipStyle(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.OnAccent).Background(bg).Padding(0, 1)
}

// StatusBarBase returns the base style for the status bar background/foreground.
func StatusBarBase() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.BarFG).Background(Vitesse.BarBG)
}

// Button renders a small accent button label with consistent styling.
func Button(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.OnAccent).Background(Vitesse.Primary).Padding(0, 1).Render(s)
}

// hex strips the alpha channel from #RRGGBBAA colors for renderers that do not accept it.
func hex(c lipgloss.Color) string {
	s := string(c)
	if len(s) == 9 && s[0] == '#' {
		return s[:7]
	}
	return s
}
