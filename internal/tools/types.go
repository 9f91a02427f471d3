package tools

// CLIType identifies a supported external coding CLI.
type CLIType string

const (
	CLIClaude CLIType = "claude"
	CLICursor CLIType = "cursor"
)

// ProbeCommand is an executable name followed by its arguments.
type ProbeCommand []string

// Name returns the executable part of the command.
func (c ProbeCommand) Name() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Args returns the arguments after the executable.
func (c ProbeCommand) Args() []string {
	if len(c) < 2 {
		return nil
	}
	return c[1:]
}

// With returns a copy of the command with extra arguments inserted right after the executable.
func (c ProbeCommand) With(flags ...string) ProbeCommand {
	if len(c) == 0 {
		return nil
	}
	out := make(ProbeCommand, 0, len(c)+len(flags))
	out = append(out, c[0])
	out = append(out, flags...)
	out = append(out, c[1:]...)
	return out
}

// ToolInfo describes one registered CLI and how to probe it.
type ToolInfo struct {
	ID          CLIType
	DisplayName string
	Command     ProbeCommand // version/availability probe
	// SecondaryCommand is the tool-specific configuration check.
	SecondaryCommand ProbeCommand
	InstallHint      string
	Models           []string
}

// ErrorKind classifies why a probe or verification did not succeed.
type ErrorKind string

const (
	KindNone               ErrorKind = ""
	KindNotFound           ErrorKind = "not_found"
	KindNonZeroExit        ErrorKind = "non_zero_exit"
	KindPermissionConflict ErrorKind = "permission_conflict"
	KindPrecondition       ErrorKind = "precondition"
	KindNotConfigured      ErrorKind = "not_configured"
	KindTimeout            ErrorKind = "timeout"
	KindUnexpected         ErrorKind = "unexpected"
)

// Probe result messages shared by callers that need to recognise them.
const (
	MsgNotFound        = "Command not found"
	MsgTimedOut        = "timed out"
	MsgCanceled        = "canceled"
	VersionPlaceholder = "installed"
)

// ProbeResult is the outcome of one process invocation.
// Installed implies Error == ""; !Installed implies Version == "".
type ProbeResult struct {
	CLIID     CLIType   `json:"cli_id"`
	Installed bool      `json:"installed"`
	Version   string    `json:"version,omitempty"`
	Error     string    `json:"error,omitempty"`
	Kind      ErrorKind `json:"error_kind,omitempty"`
	ExitCode  int       `json:"exit_code"`
	Stdout    string    `json:"-"`
	Stderr    string    `json:"-"`
}
