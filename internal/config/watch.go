package config

import (
    "context"
    "os"
    "path/filepath"
    "time"

    "github.com/fsnotify/fsnotify"
    "github.com/zeebo/blake3"

    "cliprobe/internal/system"
)

// Fingerprint returns the blake3 digest of the file at path, or zero when unreadable.
func Fingerprint(path string) [32]byte {
    b, err := os.ReadFile(path)
    if err != nil {
        return [32]byte{}
    }
    return blake3.Sum256(b)
}

// Watcher reloads the config file when its content changes.
type Watcher struct {
    Path string
    // Debounce coalesces bursts of events from editors that write in several steps.
    Debounce time.Duration
    OnChange func(Config)
}

// Run watches until ctx ends. The parent directory is watched so that
// atomic rename-based saves are seen. Invalid files are logged and ignored.
func (w *Watcher) Run(ctx context.Context) error {
    log := system.For("config")
    fw, err := fsnotify.NewWatcher()
    if err != nil {
        return err
    }
    defer fw.Close()
    dir := filepath.Dir(w.Path)
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return err
    }
    if err := fw.Add(dir); err != nil {
        return err
    }
    debounce := w.Debounce
    if debounce <= 0 {
        debounce = 120 * time.Millisecond
    }

    last := Fingerprint(w.Path)
    var timer *time.Timer
    var fire <-chan time.Time
    for {
        select {
        case <-ctx.Done():
            if timer != nil {
                timer.Stop()
            }
            return nil
        case ev, ok := <-fw.Events:
            if !ok {
                return nil
            }
            if filepath.Clean(ev.Name) != filepath.Clean(w.Path) {
                continue
            }
            if timer == nil {
                timer = time.NewTimer(debounce)
            } else {
                timer.Reset(debounce)
            }
            fire = timer.C
        case err, ok := <-fw.Errors:
            if !ok {
                return nil
            }
            log.Warn("config watch error", "err", err)
        case <-fire:
            fire = nil
            sum := Fingerprint(w.Path)
            if sum == last {
                continue
            }
            last = sum
            cfg, err := Load(w.Path)
            if err != nil {
                log.Warn("config reload skipped", "path", w.Path, "err", err)
                continue
            }
            log.Info("config reloaded", "path", w.Path)
            if w.OnChange != nil {
                w.OnChange(cfg)
            }
        }
    }
}
