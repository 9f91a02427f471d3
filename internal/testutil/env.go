package testutil

import (
    "os"
    "path/filepath"
    "testing"
)

// WithEnv sets env var to val for the duration of the test scope.
// Returns a cleanup func to restore previous value.
func WithEnv(t *testing.T, key, val string) func() {
    t.Helper()
    old, had := os.LookupEnv(key)
    if val == "" {
        _ = os.Unsetenv(key)
    } else {
        _ = os.Setenv(key, val)
    }
    return func() {
        if had {
            _ = os.Setenv(key, old)
        } else {
            _ = os.Unsetenv(key)
        }
    }
}

// PrependPath puts dir in front of PATH for the duration of the test.
func PrependPath(t *testing.T, dir string) {
    t.Helper()
    t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// WriteFakeCLI writes an executable bash script named name into dir and returns its path.
// body runs after `set -euo pipefail`.
func WriteFakeCLI(t *testing.T, dir, name, body string) string {
    t.Helper()
    p := filepath.Join(dir, name)
    script := "#!/usr/bin/env bash\nset -euo pipefail\n" + body + "\n"
    if err := os.WriteFile(p, []byte(script), 0o755); err != nil {
        t.Fatalf("write fake cli: %v", err)
    }
    return p
}
