package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldReason     = "reason"

	// Configuration fields.
	FieldConfigFile = "config_file"
	FieldCheckOnly  = "check_only"
	FieldJobs       = "jobs"
	FieldNewline    = "new_line_marker"
	FieldLanguage   = "language"

	// Per-file fields.
	FieldChanges = "changes"
	FieldBytes   = "bytes"
	FieldBackup  = "backup"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"
	FieldChangesTotal    = "changes_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
