package tools

import (
    "context"
    "errors"
    "fmt"
    "io/fs"
    "os/exec"
    "strings"
    "time"

    "cliprobe/internal/system"
)

// DefaultProbeTimeout bounds a single probe when no timeout is configured.
const DefaultProbeTimeout = 5 * time.Second

// Prober turns raw process outcomes into ProbeResults. It never returns an error:
// every failure mode is described by the result itself.
type Prober struct {
    Runner  Runner
    Timeout time.Duration
}

// NewProber returns a Prober backed by ExecRunner.
func NewProber(timeout time.Duration) *Prober {
    if timeout <= 0 {
        timeout = DefaultProbeTimeout
    }
    return &Prober{Runner: ExecRunner{}, Timeout: timeout}
}

// ProbeTool probes t using its registered version command.
func (p *Prober) ProbeTool(ctx context.Context, t ToolInfo) ProbeResult {
    return p.Probe(ctx, t.ID, t.Command)
}

// Probe runs cmd once under the prober's deadline. env entries are appended to
// the inherited environment.
func (p *Prober) Probe(ctx context.Context, id CLIType, cmd ProbeCommand, env ...string) (res ProbeResult) {
    log := system.For("probe")
    start := time.Now()
    defer func() {
        if r := recover(); r != nil {
            res = ProbeResult{CLIID: id, ExitCode: -1, Error: fmt.Sprint(r), Kind: KindUnexpected}
        }
        log.Debug("probe finished", "cli", id, "cmd", strings.Join(cmd, " "), "installed", res.Installed, "kind", res.Kind, "elapsed", time.Since(start))
    }()

    runner := p.Runner
    if runner == nil {
        runner = ExecRunner{}
    }
    if p.Timeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(ctx, p.Timeout)
        defer cancel()
    }
    out := runner.Run(ctx, Invocation{Command: cmd, Env: env})
    return Interpret(id, out)
}

// Interpret maps a raw Outcome to a ProbeResult.
func Interpret(id CLIType, out Outcome) ProbeResult {
    res := ProbeResult{
        CLIID:    id,
        ExitCode: out.ExitCode,
        Stdout:   decode(out.Stdout),
        Stderr:   decode(out.Stderr),
    }
    if out.Err != nil {
        res.Kind, res.Error = ClassifyError(out.Err)
        return res
    }
    if out.ExitCode == 0 {
        res.Installed = true
        res.Version = FirstLine(res.Stdout)
        if res.Version == "" {
            res.Version = VersionPlaceholder
        }
        return res
    }
    res.Kind = KindNonZeroExit
    res.Error = strings.TrimSpace(res.Stderr)
    if res.Error == "" {
        res.Error = fmt.Sprintf("Command failed with code %d", out.ExitCode)
    }
    return res
}

// ClassifyError maps a spawn or wait error to its kind and user-facing message.
func ClassifyError(err error) (ErrorKind, string) {
    switch {
    case errors.Is(err, context.DeadlineExceeded):
        return KindTimeout, MsgTimedOut
    case errors.Is(err, context.Canceled):
        return KindUnexpected, MsgCanceled
    case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
        return KindNotFound, MsgNotFound
    default:
        return KindUnexpected, err.Error()
    }
}

// FirstLine returns the first non-empty line of s, trimmed.
func FirstLine(s string) string {
    for _, ln := range strings.Split(s, "\n") {
        if ln = strings.TrimSpace(ln); ln != "" {
            return ln
        }
    }
    return ""
}

func decode(b []byte) string {
    return strings.ToValidUTF8(string(b), "�")
}
