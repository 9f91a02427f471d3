package cli

import (
    "fmt"
    "os"

    "github.com/spf13/cobra"

    "cliprobe/internal/app"
    "cliprobe/internal/system"
)

var (
    configFlag   string
    logLevelFlag string
)

var rootCmd = &cobra.Command{
    Use:   "cliprobe",
    Short: "cliprobe – availability probes for AI coding CLIs",
    Long:  "cliprobe checks whether AI coding CLIs (Claude Code, Cursor Agent) are installed and usable,\nverifies permission modes, and serves the results over a small HTTP API.",
    PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
        if logLevelFlag != "" && !system.SetLevel(logLevelFlag) {
            return fmt.Errorf("unknown log level %q", logLevelFlag)
        }
        return nil
    },
    RunE: func(cmd *cobra.Command, args []string) error {
        // Default action: the local dashboard
        env, err := loadEnv()
        if err != nil {
            return err
        }
        return app.Start(env.dash(""))
    },
    SilenceUsage:  true,
    SilenceErrors: true,
}

func init() {
    rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "config file (default ~/.cliprobe/config.yaml, or $CLIPROBE_CONFIG)")
    rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

// Execute runs the CLI.
func Execute() {
    if err := rootCmd.Execute(); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}
