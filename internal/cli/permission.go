package cli

import (
    "encoding/json"
    "fmt"
    "strings"

    "github.com/spf13/cobra"

    "cliprobe/internal/client"
    "cliprobe/internal/permission"
    "cliprobe/internal/ui"
)

var (
    permJSON   bool
    permRemote string
)

func init() {
    rootCmd.AddCommand(permissionCmd)
    permissionCmd.AddCommand(permissionTestCmd)
    permissionTestCmd.Flags().BoolVar(&permJSON, "json", false, "output JSON")
    permissionTestCmd.Flags().StringVar(&permRemote, "remote", "", "ask a running server (host:port or URL) instead of testing locally")
}

var permissionCmd = &cobra.Command{
    Use:   "permission",
    Short: "Permission mode checks for Claude Code",
}

var permissionTestCmd = &cobra.Command{
    Use:       "test [acceptEdits|bypassPermissions]",
    Short:     "Verify that Claude Code accepts a permission mode on this host",
    Long:      "Without a mode argument the configured default (cli_settings.claude.permission_mode) is tested.\nbypassPermissions is refused without running anything when cliprobe runs as root.",
    Args:      cobra.MaximumNArgs(1),
    ValidArgs: []string{permission.ModeAcceptEdits, permission.ModeBypassPermissions},
    RunE:      func(cmd *cobra.Command, args []string) error {
        mode := ""
        if len(args) == 1 {
            mode = args[0]
        }
        var out permission.Outcome
        if permRemote != "" {
            o, err := client.New(permRemote).TestPermissionMode(cmd.Context(), mode)
            if err != nil {
                return err
            }
            out = o
        } else {
            env, err := loadEnv()
            if err != nil {
                return err
            }
            out = env.svc.VerifyPermissionMode(cmd.Context(), mode)
        }

        w := cmd.OutOrStdout()
        if permJSON {
            enc := json.NewEncoder(w)
            enc.SetIndent("", "  ")
            return enc.Encode(out)
        }
        term := ui.NewTerminal(w)
        if out.Success {
            body := out.Message + "\n" + ui.Dim().Render("version: "+out.Version)
            term.Panel(body, "Permission mode", ui.Vitesse.Primary)
        } else {
            lines := []string{out.Error}
            if out.Details != "" {
                lines = append(lines, "", ui.Dim().Render(out.Details))
            }
            if out.Suggestion != "" {
                lines = append(lines, "", ui.IconWarn()+" "+out.Suggestion)
            }
            term.Panel(strings.Join(lines, "\n"), "Permission mode", ui.Vitesse.Red)
        }
        term.StatusLine(ui.KV{Key: "root", Value: fmt.Sprint(out.IsRoot)}, ui.KV{Key: "kind", Value: kindOrDash(string(out.Kind))})
        term.OperationResult("Permission test", out.Success, "")
        return nil
    },
}

func kindOrDash(s string) string {
    if s == "" {
        return "-"
    }
    return s
}
