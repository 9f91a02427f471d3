package cli

import (
    "github.com/spf13/cobra"

    "cliprobe/internal/app"
)

var dashRemote string

func init() {
    rootCmd.AddCommand(dashCmd)
    dashCmd.Flags().StringVar(&dashRemote, "remote", "", "watch a running server (host:port or URL) instead of probing locally")
}

var dashCmd = &cobra.Command{
    Use:   "dash",
    Short: "Interactive status dashboard",
    RunE: func(cmd *cobra.Command, args []string) error {
        env, err := loadEnv()
        if err != nil {
            return err
        }
        return app.Start(env.dash(dashRemote))
    },
}
