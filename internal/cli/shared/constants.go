// Package shared provides constants and types used across CLI subpackages.
package shared

import (
	"errors"
	"fmt"
)

// Exit codes for the reldocs CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution, including runs
	// with nothing to document.
	ExitSuccess = 0

	// ExitGenerationFailed indicates the generator failed or returned nothing.
	ExitGenerationFailed = 1

	// ExitValidationFailed indicates 'check --strict' found violations.
	ExitValidationFailed = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfigError indicates invalid configuration or a missing prerequisite
	ExitConfigError = 4

	// ExitTimeout indicates generation timed out
	ExitTimeout = 5
)

// Command group IDs for help output.
const (
	GroupDocs          = "docs"
	GroupInspect       = "inspect"
	GroupConfiguration = "configuration"
)

// ExitError carries an exit code out of a cobra RunE.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps err to a process exit code. Errors without an ExitError in
// their chain map to ExitGenerationFailed.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGenerationFailed
}
