package runner

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gowsfmt/pkg/diff"
	"github.com/yaklabco/gowsfmt/pkg/filetype"
	"github.com/yaklabco/gowsfmt/pkg/fsutil"
	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

// Per-file error categories.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrReadFailure indicates the file could not be read.
	ErrReadFailure = errors.New("read failure")

	// ErrWriteFailure indicates the formatted content could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// Skip reasons.
const (
	SkipBinary    = "binary file"
	SkipGenerated = "generated file"
	SkipModified  = "file modified during processing"
)

// FileResult is the outcome of processing one file.
type FileResult struct {
	// Path is the file that was processed.
	Path string

	// OriginalInfo is the file state when it was read.
	OriginalInfo *fsutil.FileInfo

	// Class describes the file.
	Class filetype.Class

	// Changed reports whether formatting changes the content.
	Changed bool

	// Events lists the modifications in line order.
	Events []whitespace.ChangeEvent

	// Diff is the unified diff, set when diffs were requested and the file
	// changed.
	Diff *diff.Diff

	// Skipped is set when the file was left alone.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is set when a backup of the original was written.
	BackupCreated bool

	// Written is set when the formatted content was written to disk.
	Written bool
}

// NeedsFormatting reports whether the file was not already formatted.
func (r *FileResult) NeedsFormatting() bool {
	return r != nil && !r.Skipped && r.Changed
}

// Summary returns a short human-readable status.
func (r *FileResult) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "formatted (backup created)"
	case r.Written:
		return "formatted"
	case r.Changed:
		return "needs formatting"
	default:
		return "ok"
	}
}

// ProcessFile formats a single file.
//
// The steps are:
//  1. Read and hash the file.
//  2. Skip binary files, and generated files when requested.
//  3. Format the content.
//  4. Record a diff when requested.
//  5. Stop here in check-only mode or when nothing changed.
//  6. Skip the file if it changed on disk since step 1.
//  7. Create a backup when enabled.
//  8. Write the formatted content atomically, keeping the file mode.
func ProcessFile(ctx context.Context, path string, opts ProcessOptions) (*FileResult, error) {
	result := &FileResult{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}
	result.OriginalInfo = info

	result.Class = filetype.Classify(path, content)
	if reason := skipReason(result.Class, opts); reason != "" {
		result.Skipped = true
		result.SkipReason = reason
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	outcome := whitespace.Format(opts.Format, content)
	result.Changed = outcome.Changed
	result.Events = outcome.Events

	if !outcome.Changed {
		return result, nil
	}

	if opts.Diff {
		result.Diff = diff.Generate(path, content, outcome.Bytes)
	}

	if opts.CheckOnly {
		return result, nil
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", categorizeError(err))
	}
	if modified {
		result.Skipped = true
		result.SkipReason = SkipModified
		return result, nil
	}

	created, err := fsutil.CreateBackup(ctx, info, content, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("%w: create backup: %w", ErrWriteFailure, err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, path, outcome.Bytes, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

func skipReason(class filetype.Class, opts ProcessOptions) string {
	switch {
	case class.Binary:
		return SkipBinary
	case class.Generated && opts.SkipGenerated:
		return SkipGenerated
	default:
		return ""
	}
}

// categorizeError wraps err with the matching category.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
}

// IsFileError reports whether err is one of the per-file categories.
func IsFileError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrReadFailure) ||
		errors.Is(err, ErrWriteFailure)
}
