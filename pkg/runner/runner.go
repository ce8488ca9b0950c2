package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gowsfmt/internal/logging"
)

// Runner formats the files of a run.
type Runner struct {
	// Process handles a single file. It defaults to ProcessFile.
	Process func(ctx context.Context, path string, opts ProcessOptions) (*FileResult, error)
}

// New creates a Runner backed by ProcessFile.
func New() *Runner {
	return &Runner{Process: ProcessFile}
}

// Run discovers files under opts.Paths and processes them concurrently.
//
// A file that fails does not stop the run: its error is recorded in the
// FileOutcome. Outcomes are returned in path order regardless of completion
// order. An error is returned only when discovery fails or ctx is cancelled,
// in which case the partial result is returned alongside it.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files:     make([]FileOutcome, 0, len(files)),
		Stats:     newStats(),
		CheckOnly: opts.Process.CheckOnly,
	}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("discovered files", logging.FieldFiles, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	process := r.Process
	if process == nil {
		process = ProcessFile
	}

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			fr, err := process(groupCtx, path, opts.Process)
			outcomes[i] = FileOutcome{Path: path, Result: fr, Error: err}
			done[i] = true

			switch {
			case err != nil:
				logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
			case fr.Skipped:
				logger.Debug("file skipped", logging.FieldPath, path, logging.FieldReason, fr.SkipReason)
			default:
				logger.Debug("file processed",
					logging.FieldPath, path,
					logging.FieldLanguage, fr.Class.Language,
					logging.FieldChanges, len(fr.Events))
			}

			return nil
		})
	}

	// Workers only return context errors; ctx.Err below reports them.
	_ = group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}
