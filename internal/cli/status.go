package cli

import (
    "encoding/json"
    "fmt"
    "io"
    "strings"

    "github.com/spf13/cobra"

    "cliprobe/internal/status"
    "cliprobe/internal/tools"
    "cliprobe/internal/ui"
)

var (
    statusJSON   bool
    statusFormat string
    statusRemote string
)

func init() {
    rootCmd.AddCommand(statusCmd)
    statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output JSON (same as --format json)")
    statusCmd.Flags().StringVarP(&statusFormat, "format", "f", "table", "output format: table|markdown|json")
    statusCmd.Flags().StringVar(&statusRemote, "remote", "", "query a running server (host:port or URL) instead of probing locally")
}

var statusCmd = &cobra.Command{
    Use:   "status",
    Short: "Show availability of every supported CLI",
    RunE: func(cmd *cobra.Command, args []string) error {
        env, err := loadEnv()
        if err != nil {
            return err
        }
        format := strings.ToLower(statusFormat)
        if statusJSON {
            format = "json"
        }
        entries, err := env.fetcher(statusRemote)(cmd.Context())
        if err != nil {
            return err
        }
        return writeStatus(cmd.OutOrStdout(), format, env.svc.Tools(), entries)
    },
}

func writeStatus(w io.Writer, format string, infos []tools.ToolInfo, entries map[tools.CLIType]status.Entry) error {
    rows := ui.OrderRows(infos, entries)
    switch format {
    case "json":
        enc := json.NewEncoder(w)
        enc.SetIndent("", "  ")
        return enc.Encode(entries)
    case "markdown", "md":
        _, err := fmt.Fprint(w, ui.RenderMarkdown(ui.StatusMarkdown(rows), 80))
        return err
    case "table", "":
        _, err := fmt.Fprintln(w, ui.StatusTable(rows))
        return err
    default:
        return fmt.Errorf("unknown format %q (want table, markdown or json)", format)
    }
}
