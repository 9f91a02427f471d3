// Package permission verifies that the claude CLI accepts a given permission
// mode on this host. Unsafe combinations are rejected before any process runs.
package permission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cliprobe/internal/system"
	"cliprobe/internal/tools"
)

const (
	ModeAcceptEdits       = "acceptEdits"
	ModeBypassPermissions = "bypassPermissions"

	bypassFlag = "--dangerously-skip-permissions"
	noInteract = "CLAUDE_NO_INTERACTIVE=1"
)

// Outcome is the result of one verification. It is computed per request and never cached.
type Outcome struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Error      string          `json:"error,omitempty"`
	Suggestion string          `json:"suggestion,omitempty"`
	IsRoot     bool            `json:"is_root"`
	Details    string          `json:"details,omitempty"`
	Version    string          `json:"version,omitempty"`
	ExitCode   *int            `json:"exit_code,omitempty"`
	Kind       tools.ErrorKind `json:"error_kind,omitempty"`
}

// Verifier runs permission-mode checks against the claude CLI.
type Verifier struct {
	Runner  tools.Runner
	Timeout time.Duration
	// IsRoot reports whether the process runs with elevated privileges. Defaults to RunningAsRoot.
	IsRoot func() bool
	// Base is the probe command the mode flags are applied to.
	Base tools.ProbeCommand
}

// NewVerifier returns a Verifier for base using the OS process runner.
func NewVerifier(base tools.ProbeCommand, timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = tools.DefaultProbeTimeout
	}
	return &Verifier{Runner: tools.ExecRunner{}, Timeout: timeout, IsRoot: RunningAsRoot, Base: base}
}

// CommandFor returns the command that tests mode. Unknown modes are tested as acceptEdits.
func (v *Verifier) CommandFor(mode string) tools.ProbeCommand {
	if mode == ModeBypassPermissions {
		return v.Base.With(bypassFlag)
	}
	return append(tools.ProbeCommand(nil), v.Base...)
}

// Verify checks mode and describes the result. It never returns an error.
func (v *Verifier) Verify(ctx context.Context, mode string) (out Outcome) {
	log := system.For("permission")
	isRoot := v.root()
	out.IsRoot = isRoot
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{IsRoot: isRoot, Error: fmt.Sprintf("Failed to test permission mode: %v", r), Kind: tools.KindUnexpected}
		}
		log.Info("permission mode verified", "mode", mode, "success", out.Success, "kind", out.Kind, "root", isRoot)
	}()

	if mode == ModeBypassPermissions && isRoot {
		out.Error = "Cannot use 'bypassPermissions' mode when running as root/sudo"
		out.Suggestion = "Use 'acceptEdits' mode instead for root environments"
		out.Kind = tools.KindPrecondition
		return out
	}

	runner := v.Runner
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	if v.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.Timeout)
		defer cancel()
	}
	res := tools.Interpret(tools.CLIClaude, runner.Run(ctx, tools.Invocation{
		Command: v.CommandFor(mode),
		Env:     []string{noInteract},
	}))
	return v.describe(mode, res, out)
}

func (v *Verifier) describe(mode string, res tools.ProbeResult, out Outcome) Outcome {
	if res.Installed {
		out.Success = true
		out.Message = fmt.Sprintf("Permission mode '%s' is working correctly", mode)
		out.Version = res.Version
		if strings.TrimSpace(res.Stdout) == "" {
			out.Version = "Claude CLI detected"
		}
		code := res.ExitCode
		out.ExitCode = &code
		return out
	}

	switch res.Kind {
	case tools.KindNotFound:
		out.Error = "Claude CLI not found"
		out.Suggestion = "Please install Claude Code CLI: npm install -g @anthropic-ai/claude-code"
		out.Kind = tools.KindNotFound
		return out
	case tools.KindTimeout:
		out.Error = fmt.Sprintf("Claude CLI test with permission mode '%s' %s", mode, tools.MsgTimedOut)
		out.Kind = tools.KindTimeout
		return out
	case tools.KindNonZeroExit:
	default:
		out.Error = "Failed to test permission mode: " + res.Error
		out.Kind = tools.KindUnexpected
		return out
	}

	stderr := strings.TrimSpace(res.Stderr)
	code := res.ExitCode
	out.ExitCode = &code
	if ClassifyFailure(stderr) == tools.KindPermissionConflict {
		out.Error = "Permission mode conflict: Cannot bypass permissions as root user"
		out.Suggestion = "Switch to 'acceptEdits' mode for root environments"
		out.Details = stderr
		out.Kind = tools.KindPermissionConflict
		return out
	}
	out.Error = fmt.Sprintf("Claude CLI test failed with permission mode '%s'", mode)
	out.Details = stderr
	if out.Details == "" {
		out.Details = fmt.Sprintf("Command failed with exit code %d", code)
	}
	out.Kind = tools.KindNonZeroExit
	return out
}

func (v *Verifier) root() bool {
	if v.IsRoot == nil {
		return RunningAsRoot()
	}
	return v.IsRoot()
}
