package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gowsfmt/internal/configloader"
	"github.com/yaklabco/gowsfmt/internal/logging"
	"github.com/yaklabco/gowsfmt/internal/ui/pretty"
	"github.com/yaklabco/gowsfmt/pkg/config"
	"github.com/yaklabco/gowsfmt/pkg/reporter"
	"github.com/yaklabco/gowsfmt/pkg/runner"
	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

type formatFlags struct {
	checkOnly      bool
	diff           bool
	format         string
	jobs           int
	ignore         []string
	exclude        []string
	followSymlinks bool
	hidden         bool
	skipVendored   bool
	skipGenerated  bool
	backup         bool
	noBackups      bool
	stats          bool
	compact        bool

	newLineMarker       string
	addEOF              bool
	removeEOF           bool
	normalizeNewLines   bool
	trailingWhitespace  bool
	leadingEmptyLines   bool
	trailingEmptyLines  bool
	tabWidth            int
	nonStandard         string
	emptyFiles          string
	whitespaceOnlyFiles string
}

const formatLongDescription = `Format files in place.

Without paths, every file under the current directory is processed. Hidden
files, VCS directories and binary files are skipped. Options come from the
config file (.gowsfmt.yml), GOWSFMT_* environment variables and flags, in
increasing order of precedence. Without any options nothing changes.

Examples:
  gowsfmt format --remove-trailing-whitespace --add-new-line-marker-at-end-of-file
  gowsfmt format --new-line-marker linux --normalize-new-line-markers src/
  gowsfmt format --check-only                 # Report, do not write
  gowsfmt format --diff                       # Print a patch instead of writing
  gowsfmt format --format json --check-only   # Machine-readable report`

const checkLongDescription = `Report files that need formatting without writing anything.

Exits with status 1 when at least one file would change. Accepts the same
options as format.

Examples:
  gowsfmt check                               # Use the project config
  gowsfmt check --remove-trailing-whitespace docs/
  gowsfmt check --format sarif > gowsfmt.sarif`

func newFormatCommand(info BuildInfo, checkOnly bool) *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Normalize whitespace in files",
		Long:  formatLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags, info, checkOnly)
		},
	}

	if checkOnly {
		cmd.Use = "check [paths...]"
		cmd.Short = "Report files that need whitespace normalization"
		cmd.Long = checkLongDescription
	}

	addFormatFlags(cmd.Flags(), flags, checkOnly)

	return cmd
}

func addFormatFlags(fs *pflag.FlagSet, flags *formatFlags, checkOnly bool) {
	if !checkOnly {
		fs.BoolVar(&flags.checkOnly, "check-only", false, "report what would change without writing")
		fs.BoolVar(&flags.backup, "backup", false, "keep a copy of each rewritten file")
		fs.BoolVar(&flags.noBackups, "no-backups", false, "disable backups for this run")
	}
	fs.BoolVar(&flags.diff, "diff", false, "print a unified diff instead of writing (same as --format diff)")
	fs.StringVar(&flags.format, "format", "", "output format: text, json, sarif, diff, summary")
	fs.IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	fs.StringArrayVar(&flags.ignore, "ignore", nil, "glob pattern of paths to skip (repeatable)")
	fs.StringArrayVar(&flags.exclude, "exclude", nil, "regular expression of slash-separated paths to skip (repeatable)")
	fs.BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symbolic links")
	fs.BoolVar(&flags.hidden, "hidden", false, "include dot files and dot directories")
	fs.BoolVar(&flags.skipVendored, "skip-vendored", false, "skip vendor/, node_modules/ and similar trees")
	fs.BoolVar(&flags.skipGenerated, "skip-generated", false, "skip files marked as generated")
	fs.BoolVar(&flags.stats, "stats", false, "print run statistics to stderr")
	fs.BoolVar(&flags.compact, "compact", false, "minified JSON and SARIF output")

	fs.StringVar(&flags.newLineMarker, whitespace.OptionNewLineMarker, "auto",
		"line terminator: auto, linux, macos, windows")
	fs.BoolVar(&flags.addEOF, whitespace.OptionAddEOF, false, "terminate the last line")
	fs.BoolVar(&flags.removeEOF, whitespace.OptionRemoveEOF, false, "strip the terminator from the last line")
	fs.BoolVar(&flags.normalizeNewLines, whitespace.OptionNormalizeNewLines, false,
		"rewrite every line terminator to --new-line-marker")
	fs.BoolVar(&flags.trailingWhitespace, whitespace.OptionTrailingWhitespace, false,
		"strip whitespace at the end of each line")
	fs.BoolVar(&flags.leadingEmptyLines, whitespace.OptionLeadingEmptyLines, false,
		"drop empty lines at the start of the file")
	fs.BoolVar(&flags.trailingEmptyLines, whitespace.OptionTrailingEmptyLines, false,
		"drop empty lines at the end of the file")
	fs.IntVar(&flags.tabWidth, whitespace.OptionReplaceTabs, whitespace.TabsUntouched,
		"replace each tab with N spaces; 0 removes tabs, negative leaves them")
	fs.StringVar(&flags.nonStandard, whitespace.OptionNonStandardWhitespace, "ignore",
		"vertical tab and form feed: ignore, replace, remove")
	fs.StringVar(&flags.emptyFiles, whitespace.OptionEmptyFiles, "ignore",
		"empty files: ignore, empty, one-line")
	fs.StringVar(&flags.whitespaceOnlyFiles, whitespace.OptionWhitespaceOnlyFiles, "ignore",
		"files with only whitespace: ignore, empty, one-line")
}

// toConfig returns the configuration layer set by flags. Only flags given on
// the command line are set, so lower layers stay visible.
func (f *formatFlags) toConfig(fs *pflag.FlagSet) *config.Config {
	cfg := &config.Config{}
	ws := &cfg.Whitespace

	setString := func(name string, dst *string, value string) {
		if fs.Changed(name) {
			*dst = value
		}
	}
	setBool := func(name string, dst **bool, value bool) {
		if fs.Changed(name) {
			*dst = config.Bool(value)
		}
	}

	setString(whitespace.OptionNewLineMarker, &ws.NewLineMarker, f.newLineMarker)
	setBool(whitespace.OptionAddEOF, &ws.AddNewLineMarkerAtEndOfFile, f.addEOF)
	setBool(whitespace.OptionRemoveEOF, &ws.RemoveNewLineMarkerFromEndOfFile, f.removeEOF)
	setBool(whitespace.OptionNormalizeNewLines, &ws.NormalizeNewLineMarkers, f.normalizeNewLines)
	setBool(whitespace.OptionTrailingWhitespace, &ws.RemoveTrailingWhitespace, f.trailingWhitespace)
	setBool(whitespace.OptionLeadingEmptyLines, &ws.RemoveLeadingEmptyLines, f.leadingEmptyLines)
	setBool(whitespace.OptionTrailingEmptyLines, &ws.RemoveTrailingEmptyLines, f.trailingEmptyLines)
	setString(whitespace.OptionNonStandardWhitespace, &ws.NormalizeNonStandardWhitespace, f.nonStandard)
	setString(whitespace.OptionEmptyFiles, &ws.NormalizeEmptyFiles, f.emptyFiles)
	setString(whitespace.OptionWhitespaceOnlyFiles, &ws.NormalizeWhitespaceOnlyFiles, f.whitespaceOnlyFiles)
	if fs.Changed(whitespace.OptionReplaceTabs) {
		ws.ReplaceTabsWithSpaces = config.Int(f.tabWidth)
	}

	if fs.Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if fs.Changed("exclude") {
		cfg.Exclude = f.exclude
	}
	setBool("follow-symlinks", &cfg.FollowSymlinks, f.followSymlinks)
	setBool("hidden", &cfg.Hidden, f.hidden)
	setBool("skip-vendored", &cfg.SkipVendored, f.skipVendored)
	setBool("skip-generated", &cfg.SkipGenerated, f.skipGenerated)
	setBool("backup", &cfg.Backups.Enabled, f.backup)

	cfg.Jobs = f.jobs
	cfg.CheckOnly = f.checkOnly
	cfg.NoBackups = f.noBackups
	cfg.Format = config.OutputFormat(f.format)
	if f.diff {
		cfg.Format = config.FormatDiff
	}

	return cfg
}

// loadConfig resolves the configuration for a command, with cli as the
// highest-precedence layer.
func loadConfig(cmd *cobra.Command, cli *config.Config, workDir string) (*configloader.LoadResult, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, configError(fmt.Errorf("load configuration: %w", err))
	}

	logger := logging.FromContext(cmd.Context())
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, result.LoadedFrom)
	}

	return result, nil
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return pretty.ColorAuto
	}
	normalized, _ := pretty.NormalizeColorMode(mode)
	return normalized
}

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags, info BuildInfo, checkOnly bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)
	ctx = logging.WithLogger(ctx, logger)
	cmd.SetContext(ctx)

	if flags.backup && flags.noBackups {
		return usageError(fmt.Errorf("--backup and --no-backups are mutually exclusive"))
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	cli := flags.toConfig(cmd.Flags())
	if checkOnly {
		cli.CheckOnly = true
	}

	loaded, err := loadConfig(cmd, cli, workDir)
	if err != nil {
		return err
	}

	cfg := loaded.Config
	if cfg.Format == config.FormatDiff {
		cfg.CheckOnly = true
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return usageError(err)
	}

	opts, err := runner.OptionsFromConfig(cfg, args, workDir)
	if err != nil {
		return configError(err)
	}

	logger.Debug("starting run",
		logging.FieldPaths, args,
		logging.FieldWorkingDir, workDir,
		logging.FieldCheckOnly, cfg.CheckOnly,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		return runError(err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
		ToolVersion: info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if flags.stats {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatSummary(result.Stats, result.CheckOnly))
	}

	logger.Debug("run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldChangesTotal, result.Stats.ChangesTotal,
	)

	return resultError(result)
}
