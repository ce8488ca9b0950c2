package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gowsfmt/internal/logging"
	"github.com/yaklabco/gowsfmt/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// errInitDeclined is returned when the user answers no to the overwrite
// prompt.
var errInitDeclined = errors.New("not overwriting existing configuration file")

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a gowsfmt configuration file",
		Long: `Create a commented .gowsfmt.yml in the current directory.

The generated file enables the common normalizations: trailing whitespace,
line terminators and the end of the file. Edit it to taste.

Examples:
  gowsfmt init                    Create a minimal .gowsfmt.yml
  gowsfmt init --full             Document every option
  gowsfmt init --format toml      Create .gowsfmt.toml instead
  gowsfmt init --output ci.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags, isTerminal(os.Stdin))
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Document every option")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "File format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gowsfmt.yml or .gowsfmt.toml)")

	return cmd
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func runInit(cmd *cobra.Command, flags *initFlags, interactive bool) error {
	logger := logging.NewInteractive()

	format := strings.ToLower(flags.format)
	if format != "yaml" && format != "toml" {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or toml", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gowsfmt.yml"
		if format == "toml" {
			outputPath = ".gowsfmt.toml"
		}
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	absPath := outputPath
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(workDir, absPath)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !interactive {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}

		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("%s already exists. Overwrite? [y/N] ", outputPath))
		if err != nil {
			return err
		}
		if !ok {
			return usageError(errInitDeclined)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("write file: %w", err)}
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gowsfmt check' to see what would change")

	return nil
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := io.WriteString(out, prompt); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
