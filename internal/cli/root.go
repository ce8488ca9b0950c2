// Package cli provides the Cobra command structure for gowsfmt.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gowsfmt/internal/logging"
	"github.com/yaklabco/gowsfmt/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gowsfmt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var chdir string

	rootCmd := &cobra.Command{
		Use:   "gowsfmt",
		Short: "Normalize whitespace in text files",
		Long: `gowsfmt normalizes whitespace in text files.

It removes trailing whitespace, unifies line terminators, fixes the end of
the file, trims leading and trailing empty lines, and replaces tabs and
non-standard whitespace. Every transformation is opt-in, so a run without
options changes nothing. Binary files are skipped, writes are atomic, and
check-only mode reports what would change without touching any file.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if debug {
				logging.SetLevel("debug")
			}

			normalized, ok := pretty.NormalizeColorMode(color)
			if !ok {
				return usageError(fmt.Errorf("invalid --color %q: must be auto, always or never", color))
			}
			color = normalized

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError(fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath()))
			}
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&chdir, "chdir", "C", "", "run as if started in this directory")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newFormatCommand(info, false))
	rootCmd.AddCommand(newFormatCommand(info, true))
	rootCmd.AddCommand(newKindsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// workingDir returns the directory paths and config discovery are relative
// to: --chdir when given, the process working directory otherwise.
func workingDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("chdir")
	if err != nil || dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve --chdir: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", usageError(fmt.Errorf("--chdir %q is not a directory", dir))
	}

	return abs, nil
}
