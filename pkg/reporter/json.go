package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gowsfmt/pkg/runner"
	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version     string           `json:"version"`
	ToolVersion string           `json:"toolVersion"`
	CheckOnly   bool             `json:"checkOnly"`
	Files       []JSONFileResult `json:"files"`
	Summary     JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path          string       `json:"path"`
	Language      string       `json:"language,omitempty"`
	Changed       bool         `json:"changed"`
	Written       bool         `json:"written,omitempty"`
	BackupCreated bool         `json:"backupCreated,omitempty"`
	Skipped       bool         `json:"skipped,omitempty"`
	SkipReason    string       `json:"skipReason,omitempty"`
	Changes       []JSONChange `json:"changes"`
	Error         string       `json:"error,omitempty"`
}

// JSONChange represents a single change event. Line is 0 for changes that
// concern the whole file.
type JSONChange struct {
	Line    int    `json:"line"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked int            `json:"filesChecked"`
	FilesChanged int            `json:"filesChanged"`
	FilesWritten int            `json:"filesWritten"`
	FilesSkipped int            `json:"filesSkipped"`
	FilesErrored int            `json:"filesErrored"`
	TotalChanges int            `json:"totalChanges"`
	ByKind       map[string]int `json:"byKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalChanges, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version:     jsonSchemaVersion,
		ToolVersion: r.opts.ToolVersion,
		Files:       make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByKind: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.CheckOnly = result.CheckOnly
	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:    displayPath(r.opts.WorkingDir, file.Path),
			Changes: make([]JSONChange, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if fr := file.Result; fr != nil {
			fileResult.Language = fr.Class.Language
			fileResult.Changed = fr.NeedsFormatting()
			fileResult.Written = fr.Written
			fileResult.BackupCreated = fr.BackupCreated
			fileResult.Skipped = fr.Skipped
			fileResult.SkipReason = fr.SkipReason

			for _, event := range fr.Events {
				fileResult.Changes = append(fileResult.Changes, jsonChange(event, result.CheckOnly))
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesChecked = stats.FilesProcessed
	output.Summary.FilesChanged = stats.FilesChanged
	output.Summary.FilesWritten = stats.FilesWritten
	output.Summary.FilesSkipped = stats.FilesSkipped
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.TotalChanges = stats.ChangesTotal

	for kind, n := range stats.ChangesByKind {
		output.Summary.ByKind[kind.String()] = n
	}

	return output
}

func jsonChange(event whitespace.ChangeEvent, checkOnly bool) JSONChange {
	return JSONChange{
		Line:    event.Line,
		Kind:    event.Kind.String(),
		Message: event.Message(checkOnly),
		Detail:  event.Detail,
	}
}
