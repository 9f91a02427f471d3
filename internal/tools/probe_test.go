package tools

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tu "cliprobe/internal/testutil"
)

func TestInterpret(t *testing.T) {
	cases := []struct {
		name      string
		out       Outcome
		installed bool
		version   string
		errMsg    string
		kind      ErrorKind
	}{
		{"first line of stdout", Outcome{Stdout: []byte("1.0.83 (Claude Code)\nextra\n")}, true, "1.0.83 (Claude Code)", "", KindNone},
		{"skips blank leading lines", Outcome{Stdout: []byte("\n\n  v2.1.0  \n")}, true, "v2.1.0", "", KindNone},
		{"empty stdout falls back", Outcome{}, true, VersionPlaceholder, "", KindNone},
		{"stderr on failure", Outcome{ExitCode: 2, Stderr: []byte("  boom\n")}, false, "", "boom", KindNonZeroExit},
		{"synthesized failure", Outcome{ExitCode: 3, Stderr: []byte(" \n")}, false, "", "Command failed with code 3", KindNonZeroExit},
		{"lookpath miss", Outcome{ExitCode: -1, Err: &exec.Error{Name: "nope", Err: exec.ErrNotFound}}, false, "", MsgNotFound, KindNotFound},
		{"absolute path miss", Outcome{ExitCode: -1, Err: &fs.PathError{Op: "fork/exec", Path: "/x/nope", Err: fs.ErrNotExist}}, false, "", MsgNotFound, KindNotFound},
		{"deadline", Outcome{ExitCode: -1, Err: context.DeadlineExceeded}, false, "", MsgTimedOut, KindTimeout},
		{"canceled", Outcome{ExitCode: -1, Err: context.Canceled}, false, "", MsgCanceled, KindUnexpected},
		{"other spawn error", Outcome{ExitCode: -1, Err: errors.New("permission denied")}, false, "", "permission denied", KindUnexpected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Interpret(CLIClaude, tc.out)
			assert.Equal(t, CLIClaude, res.CLIID)
			assert.Equal(t, tc.installed, res.Installed)
			assert.Equal(t, tc.version, res.Version)
			assert.Equal(t, tc.errMsg, res.Error)
			assert.Equal(t, tc.kind, res.Kind)
		})
	}
}

func TestInterpret_ResultInvariant(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	errs := []error{nil, exec.ErrNotFound, context.DeadlineExceeded, context.Canceled, errors.New("boom")}
	properties.Property("installed excludes error, not installed excludes version", prop.ForAll(
		func(code int, stdout, stderr string, errIdx int) bool {
			res := Interpret(CLICursor, Outcome{ExitCode: code, Stdout: []byte(stdout), Stderr: []byte(stderr), Err: errs[errIdx]})
			if res.Installed {
				return res.Error == "" && res.Version != "" && res.Kind == KindNone
			}
			return res.Version == "" && res.Error != "" && res.Kind != KindNone
		},
		gen.IntRange(-1, 255),
		gen.AnyString(),
		gen.AnyString(),
		gen.IntRange(0, len(errs)-1),
	))
	properties.TestingRun(t)
}

func TestProber_RealProcesses(t *testing.T) {
	dir := t.TempDir()
	ok := tu.WriteFakeCLI(t, dir, "fake-ok", `echo "9.9.9 (fake)"; echo "second line"`)
	fail := tu.WriteFakeCLI(t, dir, "fake-fail", `echo "not logged in" >&2; exit 4`)
	quiet := tu.WriteFakeCLI(t, dir, "fake-quiet", `exit 7`)
	p := NewProber(5 * time.Second)

	res := p.Probe(context.Background(), CLIClaude, ProbeCommand{ok, "--version"})
	require.True(t, res.Installed, "error: %s", res.Error)
	assert.Equal(t, "9.9.9 (fake)", res.Version)
	assert.Empty(t, res.Error)

	res = p.Probe(context.Background(), CLIClaude, ProbeCommand{fail})
	assert.False(t, res.Installed)
	assert.Equal(t, "not logged in", res.Error)
	assert.Equal(t, 4, res.ExitCode)

	res = p.Probe(context.Background(), CLIClaude, ProbeCommand{quiet})
	assert.Equal(t, "Command failed with code 7", res.Error)
}

func TestProber_MissingExecutable(t *testing.T) {
	p := NewProber(time.Second)
	for _, cmd := range []ProbeCommand{
		{"cliprobe-definitely-missing-binary-12345", "--version"},
		{filepath.Join(t.TempDir(), "missing"), "--version"},
	} {
		res := p.Probe(context.Background(), CLICursor, cmd)
		assert.False(t, res.Installed)
		assert.Equal(t, MsgNotFound, res.Error)
		assert.Equal(t, KindNotFound, res.Kind)
		assert.Empty(t, res.Version)
	}
}

func TestProber_TimesOutAndKillsProcessGroup(t *testing.T) {
	dir := t.TempDir()
	hang := tu.WriteFakeCLI(t, dir, "fake-hang", `sleep 300 &
wait`)
	p := NewProber(300 * time.Millisecond)

	start := time.Now()
	res := p.Probe(context.Background(), CLIClaude, ProbeCommand{hang, "--version"})
	elapsed := time.Since(start)

	assert.False(t, res.Installed)
	assert.Equal(t, MsgTimedOut, res.Error)
	assert.Equal(t, KindTimeout, res.Kind)
	assert.Less(t, elapsed, 3*time.Second, "probe should not wait for the sleeping child")
}

func TestProber_ParentCancel(t *testing.T) {
	hang := tu.WriteFakeCLI(t, t.TempDir(), "fake-hang", `sleep 300`)
	p := NewProber(10 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(200*time.Millisecond, cancel)

	res := p.Probe(ctx, CLIClaude, ProbeCommand{hang})
	assert.Equal(t, MsgCanceled, res.Error)
}

func TestProber_EnvOverride(t *testing.T) {
	echo := tu.WriteFakeCLI(t, t.TempDir(), "fake-env", `echo "${CLIPROBE_TEST_VAR:-unset}"`)
	res := NewProber(5*time.Second).Probe(context.Background(), CLIClaude, ProbeCommand{echo}, "CLIPROBE_TEST_VAR=hello")
	require.True(t, res.Installed)
	assert.Equal(t, "hello", res.Version)
}

type panicRunner struct{}

func (panicRunner) Run(context.Context, Invocation) Outcome { panic("runner exploded") }

func TestProber_RecoversRunnerPanic(t *testing.T) {
	p := &Prober{Runner: panicRunner{}, Timeout: time.Second}
	res := p.Probe(context.Background(), CLIClaude, ProbeCommand{"claude"})
	assert.False(t, res.Installed)
	assert.Equal(t, KindUnexpected, res.Kind)
	assert.True(t, strings.Contains(res.Error, "runner exploded"))
}

func TestProbeCommand_With(t *testing.T) {
	base := ProbeCommand{"claude", "--version"}
	got := base.With("--dangerously-skip-permissions")
	assert.Equal(t, ProbeCommand{"claude", "--dangerously-skip-permissions", "--version"}, got)
	assert.Equal(t, ProbeCommand{"claude", "--version"}, base, "base must not be mutated")
	assert.Nil(t, ProbeCommand(nil).With("x"))
}

func TestLookup_ReturnsCopy(t *testing.T) {
	ti, ok := Lookup(CLIClaude)
	require.True(t, ok)
	ti.Command[0] = "mutated"
	again, _ := Lookup(CLIClaude)
	assert.Equal(t, "claude", again.Command.Name())

	_, ok = Lookup("gemini")
	assert.False(t, ok)
	assert.Equal(t, []CLIType{CLIClaude, CLICursor}, AllCLITypes())
}
