package adapter

import (
	"strings"

	"cliprobe/internal/tools"
)

func newClaude(info tools.ToolInfo, p *tools.Prober) Adapter {
	return &base{info: info, prober: p, configured: claudeConfigured}
}

// claudeConfigured treats a working help screen as proof the CLI can start.
func claudeConfigured(sec tools.ProbeResult) (bool, string) {
	if !sec.Installed {
		if sec.Kind == tools.KindTimeout {
			return false, sec.Error
		}
		return false, "Claude Code CLI is installed but not working: " + sec.Error
	}
	out := strings.ToLower(sec.Stdout + "\n" + sec.Stderr)
	if !strings.Contains(out, "usage") {
		return false, "Claude Code CLI returned unexpected help output"
	}
	return true, ""
}
