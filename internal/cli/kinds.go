package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gowsfmt/internal/ui/pretty"
	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

const formatJSON = "json"

// kindInfo represents a change kind in JSON output.
type kindInfo struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

func newKindsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the kinds of change gowsfmt reports",
		Long: `List every kind of change gowsfmt can make, as named in text, JSON
and SARIF reports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			switch format {
			case formatJSON:
				kinds := whitespace.AllChangeKinds()
				infos := make([]kindInfo, 0, len(kinds))
				for _, kind := range kinds {
					infos = append(infos, kindInfo{Kind: kind.String(), Description: kind.Description()})
				}

				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return fmt.Errorf("encoding kinds: %w", err)
				}
				return nil
			case "text", "":
				styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
				_, err := fmt.Fprint(out, styles.FormatKindLegend())
				return err
			default:
				return usageError(fmt.Errorf("invalid format %q: must be text or json", format))
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}
