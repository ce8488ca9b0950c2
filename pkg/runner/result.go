package runner

import "github.com/yaklabco/gowsfmt/pkg/whitespace"

// FileOutcome pairs a discovered path with its result or error.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil when Error is set.
	Result *FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files read and classified without
	// error, skipped files included.
	FilesProcessed int

	// FilesSkipped is the number of files left alone.
	FilesSkipped int

	// FilesErrored is the number of files that failed.
	FilesErrored int

	// FilesChanged is the number of files that were not already formatted.
	FilesChanged int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// BackupsCreated is the number of backups written.
	BackupsCreated int

	// ChangesTotal is the number of change events across all files.
	ChangesTotal int

	// ChangesByKind maps change kinds to counts.
	ChangesByKind map[whitespace.ChangeKind]int
}

// Status summarizes a run for the exit code.
type Status int

const (
	// StatusClean means nothing needed to change, or every change was
	// written.
	StatusClean Status = iota

	// StatusChangesNeeded means a check-only run found unformatted files.
	StatusChangesNeeded

	// StatusFailed means at least one file could not be processed.
	StatusFailed
)

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, in path order.
	Files []FileOutcome

	// Stats contains aggregate statistics.
	Stats Stats

	// CheckOnly records whether the run wrote anything.
	CheckOnly bool
}

func newStats() Stats {
	return Stats{
		ChangesByKind: make(map[whitespace.ChangeKind]int),
	}
}

// HasFailures reports whether any file could not be processed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// NeedsFormatting reports whether any file was not already formatted.
func (r *Result) NeedsFormatting() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// Status reports the overall outcome. Failures take precedence over pending
// changes, and pending changes only count in check-only runs.
func (r *Result) Status() Status {
	switch {
	case r.HasFailures():
		return StatusFailed
	case r != nil && r.CheckOnly && r.NeedsFormatting():
		return StatusChangesNeeded
	default:
		return StatusClean
	}
}

// Errors returns the per-file errors in path order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}

	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}

	return errs
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	fr := outcome.Result
	if fr == nil {
		return
	}

	r.Stats.FilesProcessed++

	if fr.Skipped {
		r.Stats.FilesSkipped++
		return
	}

	if fr.Changed {
		r.Stats.FilesChanged++
	}
	if fr.Written {
		r.Stats.FilesWritten++
	}
	if fr.BackupCreated {
		r.Stats.BackupsCreated++
	}

	r.Stats.ChangesTotal += len(fr.Events)
	for _, e := range fr.Events {
		r.Stats.ChangesByKind[e.Kind]++
	}
}
