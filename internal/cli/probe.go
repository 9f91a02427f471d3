package cli

import (
    "encoding/json"
    "errors"
    "fmt"
    "strings"

    "github.com/sahilm/fuzzy"
    "github.com/spf13/cobra"

    "cliprobe/internal/service"
    "cliprobe/internal/tools"
    "cliprobe/internal/ui"
)

var probeJSON bool

func init() {
    rootCmd.AddCommand(probeCmd)
    probeCmd.Flags().BoolVar(&probeJSON, "json", false, "output the raw probe result as JSON")
}

var probeCmd = &cobra.Command{
    Use:   "probe <cli>",
    Short: "Run the version probe of one CLI",
    Args:  cobra.ExactArgs(1),
    ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
        return tools.Names(), cobra.ShellCompDirectiveNoFileComp
    },
    RunE: func(cmd *cobra.Command, args []string) error {
        env, err := loadEnv()
        if err != nil {
            return err
        }
        id := tools.CLIType(strings.ToLower(strings.TrimSpace(args[0])))
        res, err := env.svc.Probe(cmd.Context(), id)
        if errors.Is(err, service.ErrUnknownCLI) {
            return unknownCLIError(args[0])
        }
        if err != nil {
            return err
        }
        out := cmd.OutOrStdout()
        if probeJSON {
            enc := json.NewEncoder(out)
            enc.SetIndent("", "  ")
            return enc.Encode(res)
        }
        term := ui.NewTerminal(out)
        if res.Installed {
            term.Success(fmt.Sprintf("%s %s", id, res.Version), "probe")
            return nil
        }
        term.Error(fmt.Sprintf("%s: %s", id, res.Error), "probe")
        if info, ok := tools.Lookup(id); ok && res.Kind == tools.KindNotFound && info.InstallHint != "" {
            term.Info("install with: "+info.InstallHint, "probe")
        }
        return nil
    },
}

// unknownCLIError suggests the closest registered names.
func unknownCLIError(name string) error {
    known := tools.Names()
    matches := fuzzy.Find(strings.ToLower(name), known)
    if len(matches) > 0 {
        return fmt.Errorf("unknown cli %q, did you mean %q?", name, matches[0].Str)
    }
    return fmt.Errorf("unknown cli %q (known: %s)", name, strings.Join(known, ", "))
}
