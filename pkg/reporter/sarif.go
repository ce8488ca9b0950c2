package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gowsfmt/pkg/runner"
	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const toolInformationURI = "https://github.com/yaklabco/gowsfmt"

// SARIF levels.
const (
	sarifLevelError   = "error"
	sarifLevelWarning = "warning"
	sarifLevelNote    = "note"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one change kind.
type SARIFRule struct {
	ID               string               `json:"id"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single change.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region. Region is omitted
// for changes that concern the whole file.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected lines.
type SARIFRegion struct {
	StartLine int `json:"startLine"`
}

// SARIFInvocation reports files that could not be processed.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is a per-file processing error.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	kinds := whitespace.AllChangeKinds()

	level := sarifLevelWarning
	if result != nil && !result.CheckOnly {
		level = sarifLevelNote
	}

	rules := make([]SARIFRule, 0, len(kinds))
	ruleIndex := make(map[whitespace.ChangeKind]int, len(kinds))
	for i, kind := range kinds {
		rules = append(rules, SARIFRule{
			ID:               kind.String(),
			ShortDescription: SARIFMultiformatText{Text: kind.Description()},
			DefaultConfig:    &SARIFRuleConfig{Level: level},
		})
		ruleIndex[kind] = i
	}

	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           "gowsfmt",
				Version:        r.opts.ToolVersion,
				InformationURI: toolInformationURI,
				Rules:          rules,
			},
		},
		Results: make([]SARIFResult, 0),
	}

	output := &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}

	if result == nil {
		return output
	}

	invocation := SARIFInvocation{ExecutionSuccessful: !result.HasFailures()}

	for _, file := range result.Files {
		uri := displayPath(r.opts.WorkingDir, file.Path)

		if file.Error != nil {
			invocation.ToolExecutionNotifications = append(invocation.ToolExecutionNotifications, SARIFNotification{
				Level:     sarifLevelError,
				Message:   SARIFMessage{Text: file.Error.Error()},
				Locations: []SARIFLocation{location(uri, whitespace.FileLevel)},
			})
			continue
		}

		if file.Result == nil || file.Result.Skipped {
			continue
		}

		for _, event := range file.Result.Events {
			output.Runs[0].Results = append(output.Runs[0].Results, SARIFResult{
				RuleID:    event.Kind.String(),
				RuleIndex: ruleIndex[event.Kind],
				Level:     level,
				Message:   SARIFMessage{Text: event.Message(result.CheckOnly)},
				Locations: []SARIFLocation{location(uri, event.Line)},
			})
		}
	}

	output.Runs[0].Invocations = []SARIFInvocation{invocation}

	return output
}

func location(uri string, line int) SARIFLocation {
	loc := SARIFLocation{
		PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: SARIFArtifactLocation{URI: uri},
		},
	}

	if line != whitespace.FileLevel {
		loc.PhysicalLocation.Region = &SARIFRegion{StartLine: line}
	}

	return loc
}
