package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gowsfmt/internal/configloader"
	"github.com/yaklabco/gowsfmt/pkg/runner"
	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

// Exit codes for gowsfmt. The non-zero failure codes follow sysexits.h.
const (
	// ExitSuccess indicates nothing needed to change or every change was written.
	ExitSuccess = 0

	// ExitChangesNeeded indicates a check-only run found files to format.
	ExitChangesNeeded = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates an invalid configuration.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates at least one file could not be read or written.
	ExitIOError = 74
)

// ErrChangesNeeded is returned when a check-only run finds unformatted
// files. It only signals the exit code and is not logged.
var ErrChangesNeeded = errors.New("files need formatting")

// ExitError carries an explicit exit code.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

// ExitCodeFromResult maps a run result to an exit code.
func ExitCodeFromResult(result *runner.Result) int {
	switch result.Status() {
	case runner.StatusFailed:
		return ExitIOError
	case runner.StatusChangesNeeded:
		return ExitChangesNeeded
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to an exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	var valErr *configloader.ValidationError

	switch {
	case errors.Is(err, ErrChangesNeeded):
		return ExitChangesNeeded
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, runner.ErrPathNotFound):
		return ExitInvalidUsage
	case errors.As(err, &valErr), errors.Is(err, whitespace.ErrInvalidConfig):
		return ExitConfigError
	case runner.IsFileError(err):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// resultError converts a finished run into the error the command returns.
func resultError(result *runner.Result) error {
	switch ExitCodeFromResult(result) {
	case ExitIOError:
		n := result.Stats.FilesErrored
		return &ExitError{
			Code: ExitIOError,
			Err:  fmt.Errorf("%d %s could not be processed", n, plural(n, "file", "files")),
		}
	case ExitChangesNeeded:
		return ErrChangesNeeded
	default:
		return nil
	}
}

// runError classifies an error from the runner itself.
func runError(err error) error {
	switch {
	case errors.Is(err, runner.ErrPathNotFound), errors.Is(err, runner.ErrInvalidPattern):
		return usageError(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &ExitError{Code: ExitInternalError, Err: err}
	default:
		return fmt.Errorf("run failed: %w", err)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
