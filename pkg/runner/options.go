// Package runner formats many files: it discovers them, processes each one
// through the whitespace engine on a bounded worker pool and aggregates the
// outcomes in a deterministic order.
package runner

import (
	"github.com/yaklabco/gowsfmt/pkg/config"
	"github.com/yaklabco/gowsfmt/pkg/fsutil"
	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

// Options controls a run.
type Options struct {
	// Paths are the files and directories to process. Empty means the
	// working directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors pattern matching.
	// Empty means the process working directory.
	WorkingDir string

	// Ignore holds glob patterns for paths to skip. A pattern without a
	// slash matches the base name at any depth.
	Ignore []string

	// Exclude holds regular expressions; a path whose slash-separated form
	// relative to WorkingDir matches any of them is skipped.
	Exclude []string

	// FollowSymlinks processes symlinked files and descends into symlinked
	// directories. Otherwise symlinks are skipped.
	FollowSymlinks bool

	// Hidden includes dot files and dot directories. Version control
	// directories are always skipped.
	Hidden bool

	// SkipVendored prunes vendored trees such as vendor/ and node_modules/.
	SkipVendored bool

	// Jobs bounds the number of files processed at once. 0 or negative
	// means one per CPU.
	Jobs int

	// Process controls how each file is handled.
	Process ProcessOptions
}

// ProcessOptions controls the handling of a single file.
type ProcessOptions struct {
	// Format is the validated whitespace configuration.
	Format whitespace.Configuration

	// CheckOnly reports the changes without writing.
	CheckOnly bool

	// Diff records a unified diff for each changed file.
	Diff bool

	// SkipGenerated leaves files marked as generated alone.
	SkipGenerated bool

	// Backup controls backups of rewritten files.
	Backup fsutil.BackupConfig
}

// OptionsFromConfig builds run options from a resolved configuration. It
// fails with a *whitespace.ConfigError when the whitespace options are
// inconsistent.
func OptionsFromConfig(cfg *config.Config, paths []string, workDir string) (Options, error) {
	format, err := cfg.Configuration()
	if err != nil {
		return Options{}, err
	}

	backupMode, err := fsutil.ParseBackupMode(cfg.Backups.Mode)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Paths:          paths,
		WorkingDir:     workDir,
		Ignore:         cfg.Ignore,
		Exclude:        cfg.Exclude,
		FollowSymlinks: cfg.FollowsSymlinks(),
		Hidden:         cfg.IncludesHidden(),
		SkipVendored:   cfg.SkipsVendored(),
		Jobs:           cfg.EffectiveJobs(),
		Process: ProcessOptions{
			Format:        format,
			CheckOnly:     cfg.CheckOnly,
			Diff:          cfg.Format == config.FormatDiff,
			SkipGenerated: cfg.SkipsGenerated(),
			Backup: fsutil.BackupConfig{
				Enabled: cfg.BackupsEnabled(),
				Mode:    backupMode,
			},
		},
	}, nil
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}

	return o.Paths
}
