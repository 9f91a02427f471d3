package tools

import "sort"

// Tools is the static registry of supported CLIs, in display order.
var Tools = []ToolInfo{
	{
		ID:               CLIClaude,
		DisplayName:      "Claude Code",
		Command:          ProbeCommand{"claude", "--version"},
		SecondaryCommand: ProbeCommand{"claude", "--help"},
		InstallHint:      "npm install -g @anthropic-ai/claude-code",
		Models:           []string{"claude-sonnet-4", "claude-opus-4.1"},
	},
	{
		ID:               CLICursor,
		DisplayName:      "Cursor Agent",
		Command:          ProbeCommand{"cursor-agent", "--version"},
		SecondaryCommand: ProbeCommand{"cursor-agent", "status"},
		InstallHint:      "curl https://cursor.com/install -fsS | bash",
		Models:           []string{"gpt-5", "sonnet-4", "opus-4.1"},
	},
}

// AllCLITypes returns the registered CLI identifiers in registration order.
func AllCLITypes() []CLIType {
	out := make([]CLIType, 0, len(Tools))
	for _, t := range Tools {
		out = append(out, t.ID)
	}
	return out
}

// Lookup returns the registry entry for id.
func Lookup(id CLIType) (ToolInfo, bool) {
	for _, t := range Tools {
		if t.ID == id {
			return t.clone(), true
		}
	}
	return ToolInfo{}, false
}

// Names returns the registered identifiers as sorted strings.
func Names() []string {
	out := make([]string, 0, len(Tools))
	for _, t := range Tools {
		out = append(out, string(t.ID))
	}
	sort.Strings(out)
	return out
}

func (t ToolInfo) clone() ToolInfo {
	t.Command = append(ProbeCommand(nil), t.Command...)
	t.SecondaryCommand = append(ProbeCommand(nil), t.SecondaryCommand...)
	t.Models = append([]string(nil), t.Models...)
	return t
}
