package config

import (
    "errors"
    "os"
    "path/filepath"
    "strings"
)

const (
    // EnvConfig overrides the config file location.
    EnvConfig = "CLIPROBE_CONFIG"
    fileName  = "config.yaml"
)

// Dir returns the cliprobe dot directory, ~/.cliprobe.
// Falls back to the user config base when HOME is unavailable.
func Dir() (string, error) {
    home, err := os.UserHomeDir()
    if err == nil && strings.TrimSpace(home) != "" {
        return filepath.Join(home, ".cliprobe"), nil
    }
    base, cerr := os.UserConfigDir()
    if cerr != nil || strings.TrimSpace(base) == "" {
        return "", errors.New("cannot determine config directory")
    }
    return filepath.Join(base, "cliprobe"), nil
}

// Path resolves the config file: explicit flag value, then $CLIPROBE_CONFIG,
// then ~/.cliprobe/config.yaml.
func Path(flagValue string) (string, error) {
    if p := strings.TrimSpace(flagValue); p != "" {
        return filepath.Abs(p)
    }
    if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
        return filepath.Abs(p)
    }
    dir, err := Dir()
    if err != nil {
        return "", err
    }
    return filepath.Join(dir, fileName), nil
}
