package cli

import (
    "encoding/json"
    "errors"
    "fmt"

    "github.com/spf13/cobra"

    "cliprobe/internal/client"
    "cliprobe/internal/settings"
    "cliprobe/internal/ui"
)

var settingsRemote string

func init() {
    rootCmd.AddCommand(settingsCmd)
    settingsCmd.AddCommand(settingsShowCmd, settingsEditCmd, settingsSchemaCmd)
    settingsCmd.PersistentFlags().StringVar(&settingsRemote, "remote", "", "server (host:port or URL); default is the configured addr")
}

var settingsCmd = &cobra.Command{
    Use:   "settings",
    Short: "Show or edit the global settings of a running server",
}

var settingsShowCmd = &cobra.Command{
    Use:   "show",
    Short: "Print the server's global settings as JSON",
    RunE: func(cmd *cobra.Command, args []string) error {
        env, err := loadEnv()
        if err != nil {
            return err
        }
        g, err := client.New(env.serverURL(settingsRemote)).Settings(cmd.Context())
        if err != nil {
            return err
        }
        enc := json.NewEncoder(cmd.OutOrStdout())
        enc.SetIndent("", "  ")
        return enc.Encode(g)
    },
}

var settingsEditCmd = &cobra.Command{
    Use:   "edit",
    Short: "Edit the server's global settings interactively",
    RunE: func(cmd *cobra.Command, args []string) error {
        env, err := loadEnv()
        if err != nil {
            return err
        }
        c := client.New(env.serverURL(settingsRemote))
        cur, err := c.Settings(cmd.Context())
        if err != nil {
            return err
        }
        next, err := settings.Edit(cur, env.svc.Tools())
        if errors.Is(err, settings.ErrAborted) {
            return nil
        }
        if err != nil {
            return err
        }
        saved, err := c.ReplaceSettings(cmd.Context(), next)
        term := ui.NewTerminal(cmd.OutOrStdout())
        if err != nil {
            term.OperationResult("Settings update", false, err.Error())
            return err
        }
        term.OperationResult("Settings update", true, fmt.Sprintf("default cli %s", saved.DefaultCLI))
        return nil
    },
}

var settingsSchemaCmd = &cobra.Command{
    Use:   "schema",
    Short: "Print the JSON Schema of the global settings",
    RunE: func(cmd *cobra.Command, args []string) error {
        b, err := settings.MarshalSchema(settings.Schema())
        if err != nil {
            return err
        }
        _, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
        return err
    },
}
