package ui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// logoBlocks returns 6-row letter blocks spelling CLIPROBE.
func logoBlocks() [][]string {
	C := []string{
		"  #####  ",
		" ####### ",
		" ###     ",
		" ###     ",
		" ####### ",
		"  #####  ",
	}
	L := []string{
		" ###     ",
		" ###     ",
		" ###     ",
		" ###     ",
		" ###     ",
		" ####### ",
	}
	I := []string{
		" ####### ",
		"   ###   ",
		"   ###   ",
		"   ###   ",
		"   ###   ",
		" ####### ",
	}
	P := []string{
		" ######  ",
		" ### ### ",
		" ### ### ",
		" ######  ",
		" ###     ",
		" ###     ",
	}
	R := []string{
		" ######  ",
		" ### ### ",
		" ### ### ",
		" ######  ",
		" ### ##  ",
		" ###  ## ",
	}
	O := []string{
		"  #####  ",
		" ####### ",
		" ### ### ",
		" ### ### ",
		" ####### ",
		"  #####  ",
	}
	B := []string{
		" ######  ",
		" ### ### ",
		" ######  ",
		" ######  ",
		" ### ### ",
		" ######  ",
	}
	E := []string{
		" ####### ",
		" ###     ",
		" #####   ",
		" ###     ",
		" ###     ",
		" ####### ",
	}
	return [][]string{C, L, I, P, R, O, B, E}
}

// composeLogoLines joins blocks horizontally; when solid=true, '#' becomes a full block.
func composeLogoLines(blocks [][]string, solid bool) []string {
	sep := " "
	out := make([]string, 6)
	for row := 0; row < 6; row++ {
		parts := make([]string, 0, len(blocks))
		for _, blk := range blocks {
			s := blk[row]
			if solid {
				s = strings.ReplaceAll(s, "#", "█")
			}
			parts = append(parts, s)
		}
		out[row] = strings.Join(parts, sep)
	}
	return out
}

// Logo renders the banner centered in width, with the tagline underneath.
// Narrow terminals get the plain wordmark instead.
func Logo(width int, solid bool) string {
	if width <= 0 {
		width = 80
	}
	lines := composeLogoLines(logoBlocks(), solid)
	if xansi.StringWidth(lines[0]) > width {
		lines = []string{"cliprobe"}
	}
	lines = append(lines, "", "Probe your coding CLIs before they probe you.")
	var b strings.Builder
	for _, ln := range lines {
		pad := (width - xansi.StringWidth(ln)) / 2
		if pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(AccentBold().Render(ln))
		b.WriteString("\n")
	}
	return b.String()
}
