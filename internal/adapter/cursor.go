package adapter

import (
	"strings"

	"cliprobe/internal/tools"
)

func newCursor(info tools.ToolInfo, p *tools.Prober) Adapter {
	return &base{info: info, prober: p, configured: cursorConfigured}
}

var cursorLoggedOutMarkers = []string{"not logged in", "not authenticated", "login required"}

const cursorLoginHint = "Cursor Agent is not logged in; run `cursor-agent login`"

func cursorConfigured(sec tools.ProbeResult) (bool, string) {
	out := strings.ToLower(sec.Stdout + "\n" + sec.Stderr)
	for _, m := range cursorLoggedOutMarkers {
		if strings.Contains(out, m) {
			return false, cursorLoginHint
		}
	}
	if !sec.Installed {
		return false, sec.Error
	}
	return true, ""
}
