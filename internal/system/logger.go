package system

import (
    "os"
    "strings"

    clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger for CLI and server output.
// It prints to stderr with timestamps enabled for better UX.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
    ReportTimestamp: true,
})

// SetLevel adjusts the shared logger level ("debug", "info", "warn", "error").
// Unknown values leave the level unchanged and are reported back as false.
func SetLevel(level string) bool {
    level = strings.TrimSpace(level)
    if level == "" {
        return false
    }
    lvl, err := clog.ParseLevel(level)
    if err != nil {
        return false
    }
    Logger.SetLevel(lvl)
    return true
}

// For returns a sub-logger tagged with the given component name.
func For(component string) *clog.Logger {
    return Logger.WithPrefix(component)
}
