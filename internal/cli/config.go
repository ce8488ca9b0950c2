package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration gowsfmt would use in the current directory,
after merging config files and GOWSFMT_* environment variables and
validating the result. The files it was loaded from are listed first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workDir, err := workingDir(cmd)
			if err != nil {
				return err
			}

			loaded, err := loadConfig(cmd, nil, workDir)
			if err != nil {
				return err
			}

			var body []byte
			switch format {
			case "yaml", "yml":
				body, err = loaded.Config.ToYAML()
			case "toml":
				body, err = loaded.Config.ToTOML()
			default:
				return usageError(fmt.Errorf("invalid format %q: must be yaml or toml", format))
			}
			if err != nil {
				return fmt.Errorf("encode configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(loaded.LoadedFrom) == 0 {
				fmt.Fprintln(out, "# No configuration files found; using defaults")
			}
			for _, path := range loaded.LoadedFrom {
				fmt.Fprintf(out, "# Loaded from %s\n", path)
			}
			if _, err := out.Write(body); err != nil {
				return fmt.Errorf("write configuration: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or toml")

	return cmd
}
