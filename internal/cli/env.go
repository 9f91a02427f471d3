package cli

import (
    "context"
    "time"

    "cliprobe/internal/client"
    "cliprobe/internal/config"
    "cliprobe/internal/service"
    "cliprobe/internal/status"
    "cliprobe/internal/system"
    "cliprobe/internal/tools"
    "cliprobe/internal/ui"
)

// cmdEnv is what every subcommand needs: the resolved config and a service built from it.
type cmdEnv struct {
    path string
    cfg  config.Config
    svc  *service.Service
}

func loadEnv() (*cmdEnv, error) {
    path, err := config.Path(configFlag)
    if err != nil {
        return nil, err
    }
    cfg, err := config.Load(path)
    if err != nil {
        return nil, err
    }
    if logLevelFlag == "" && cfg.LogLevel != "" {
        if !system.SetLevel(cfg.LogLevel) {
            system.For("config").Warn("ignoring unknown log level", "level", cfg.LogLevel)
        }
    }
    return &cmdEnv{path: path, cfg: cfg, svc: service.New(cfg)}, nil
}

// fetcher returns a status source: the local service, or a server when remote is set.
func (e *cmdEnv) fetcher(remote string) ui.FetchFunc {
    if remote != "" {
        c := client.New(remote)
        return c.Status
    }
    return func(ctx context.Context) (map[tools.CLIType]status.Entry, error) {
        return e.svc.AggregatedStatus(ctx).Entries(), nil
    }
}

func (e *cmdEnv) dash(remote string) ui.DashModel {
    source := "local"
    if remote != "" {
        source = client.New(remote).BaseURL
    }
    // the whole fan-out is bounded by one task deadline plus slack
    timeout := e.cfg.EffectiveTaskTimeout() + 5*time.Second
    return ui.NewDash(e.svc.Tools(), e.fetcher(remote), source, timeout)
}

// serverURL picks the server to talk to: explicit flag, else the configured address.
func (e *cmdEnv) serverURL(remote string) string {
    if remote != "" {
        return remote
    }
    return e.cfg.Addr
}
