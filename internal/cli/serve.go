package cli

import (
    "context"
    "fmt"
    "os"
    "os/signal"
    "syscall"

    "github.com/spf13/cobra"

    "cliprobe/internal/config"
    "cliprobe/internal/system"
    "cliprobe/internal/ui"
    appver "cliprobe/internal/version"
    "cliprobe/internal/webui/server"
)

var (
    serveAddr    string
    serveOpen    bool
    serveNoWatch bool
)

func init() {
    rootCmd.AddCommand(serveCmd)
    serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "address to bind (host:port); default from config")
    serveCmd.Flags().BoolVarP(&serveOpen, "open", "o", false, "open the status endpoint in the browser after start")
    serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "do not reload the config file on change")
}

var serveCmd = &cobra.Command{
    Use:   "serve",
    Short: "Start the HTTP API server",
    RunE: func(cmd *cobra.Command, args []string) error {
        env, err := loadEnv()
        if err != nil {
            return err
        }
        addr := env.cfg.Addr
        if serveAddr != "" {
            addr = serveAddr
        }

        // Handle Ctrl+C
        ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
        defer cancel()

        if !serveNoWatch {
            w := &config.Watcher{Path: env.path, OnChange: env.svc.Reload}
            go func() {
                if err := w.Run(ctx); err != nil {
                    system.For("config").Warn("config watcher stopped", "err", err)
                }
            }()
        }

        term := ui.NewTerminal(cmd.OutOrStdout())
        term.Logo()
        term.StatusLine(
            ui.KV{Key: "version", Value: appver.AppVersion},
            ui.KV{Key: "config", Value: env.path},
            ui.KV{Key: "probe timeout", Value: env.cfg.ProbeTimeout.String()},
        )

        ready := make(chan string, 1)
        go func() {
            select {
            case bound := <-ready:
                url := fmt.Sprintf("http://%s/api/settings/cli-status", bound)
                term.ConnectionStatus(bound, "listening")
                if serveOpen {
                    if err := server.OpenBrowser(url); err != nil {
                        system.Logger.Warn("failed to open browser", "err", err)
                    }
                }
            case <-ctx.Done():
            }
        }()

        srv := &server.Server{Addr: addr, Service: env.svc, Ready: ready}
        if err := srv.Start(ctx); err != nil {
            return fmt.Errorf("serve %s: %w", addr, err)
        }
        term.ConnectionStatus(addr, "stopped")
        return nil
    },
}
