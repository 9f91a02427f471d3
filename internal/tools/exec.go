package tools

import (
    "bytes"
    "context"
    "errors"
    "os"
    "os/exec"
    "time"
)

// Invocation is a single process launch request.
type Invocation struct {
    Command ProbeCommand
    // Env entries (KEY=VALUE) appended to the inherited environment.
    Env []string
}

// Outcome is the raw result of running an Invocation.
// Err is nil when the process ran to completion, whatever its exit code.
type Outcome struct {
    ExitCode int
    Stdout   []byte
    Stderr   []byte
    Err      error
}

// Runner spawns exactly one process per Run call.
type Runner interface {
    Run(ctx context.Context, inv Invocation) Outcome
}

// ExecRunner runs commands as OS child processes.
type ExecRunner struct {
    // WaitDelay bounds how long pipes are drained after the process is killed.
    WaitDelay time.Duration
}

var errEmptyCommand = errors.New("empty command")

// Run executes inv and captures stdout and stderr in full. When ctx ends first the
// child (and its process group on unix) is killed and Err carries ctx.Err().
func (r ExecRunner) Run(ctx context.Context, inv Invocation) Outcome {
    if len(inv.Command) == 0 || inv.Command.Name() == "" {
        return Outcome{ExitCode: -1, Err: errEmptyCommand}
    }
    cmd := exec.CommandContext(ctx, inv.Command.Name(), inv.Command.Args()...)
    // Avoid opening pager or interactive prompts
    cmd.Env = append(os.Environ(), "NO_COLOR=1")
    cmd.Env = append(cmd.Env, inv.Env...)
    var stdout, stderr bytes.Buffer
    cmd.Stdout = &stdout
    cmd.Stderr = &stderr
    setProcessGroup(cmd)
    cmd.WaitDelay = r.WaitDelay
    if cmd.WaitDelay <= 0 {
        cmd.WaitDelay = 2 * time.Second
    }

    err := cmd.Run()
    out := Outcome{ExitCode: -1, Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
    if cmd.ProcessState != nil {
        out.ExitCode = cmd.ProcessState.ExitCode()
    }
    if err == nil {
        return out
    }
    if ctxErr := ctx.Err(); ctxErr != nil {
        out.Err = ctxErr
        return out
    }
    var exitErr *exec.ExitError
    if errors.As(err, &exitErr) || errors.Is(err, exec.ErrWaitDelay) {
        return out
    }
    out.Err = err
    return out
}
