package cli

import (
    "fmt"

    "github.com/spf13/cobra"

    cfg "cliprobe/internal/config"
)

var (
    configInit bool
    configShow bool
)

func init() {
    rootCmd.AddCommand(configCmd)
    configCmd.Flags().BoolVar(&configInit, "init", false, "write a default config file when none exists")
    configCmd.Flags().BoolVar(&configShow, "show", false, "print the effective config (file + env overrides)")
}

var configCmd = &cobra.Command{
    Use:   "config",
    Short: "Show the config file location",
    RunE: func(cmd *cobra.Command, args []string) error {
        path, err := cfg.Path(configFlag)
        if err != nil {
            return err
        }
        out := cmd.OutOrStdout()
        if configInit {
            wrote, err := cfg.Init(path)
            if err != nil {
                return err
            }
            if wrote {
                fmt.Fprintf(out, "✓ created %s\n", path)
            } else {
                fmt.Fprintf(out, "• %s already exists\n", path)
            }
        }
        if !configShow {
            if !configInit {
                fmt.Fprintln(out, path)
            }
            return nil
        }
        c, err := cfg.Load(path)
        if err != nil {
            return err
        }
        b, err := c.Marshal()
        if err != nil {
            return err
        }
        fmt.Fprintf(out, "# %s\n%s", path, b)
        return nil
    },
}
