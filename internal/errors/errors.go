// Package errors holds the user-facing errors of the reldocs CLI: a category,
// a message, and the steps that fix the problem.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies a CLIError for display.
type ErrorCategory int

const (
	Argument ErrorCategory = iota
	Configuration
	// Prerequisite covers missing input files, documents and repositories.
	Prerequisite
	Runtime
	// Generation covers a generator that failed or returned nothing.
	Generation
)

var categoryNames = map[ErrorCategory]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Prerequisite:  "Prerequisite Error",
	Runtime:       "Runtime Error",
	Generation:    "Generation Error",
}

func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Error"
}

// CLIError is an error meant for the terminal.
type CLIError struct {
	Category ErrorCategory
	Message  string
	// Remediation lists steps that fix the problem.
	Remediation []string
	// Usage is the correct command syntax, for argument errors.
	Usage string
}

func (e *CLIError) Error() string {
	return e.Message
}

func newError(category ErrorCategory, message string, remediation []string) *CLIError {
	return &CLIError{Category: category, Message: message, Remediation: remediation}
}

func NewArgumentError(message string, remediation ...string) *CLIError {
	return newError(Argument, message, remediation)
}

// NewArgumentErrorWithUsage is NewArgumentError with the correct syntax attached.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	e := newError(Argument, message, remediation)
	e.Usage = usage
	return e
}

func NewConfigError(message string, remediation ...string) *CLIError {
	return newError(Configuration, message, remediation)
}

func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return newError(Prerequisite, message, remediation)
}

func NewRuntimeError(message string, remediation ...string) *CLIError {
	return newError(Runtime, message, remediation)
}

func NewGenerationError(message string, remediation ...string) *CLIError {
	return newError(Generation, message, remediation)
}

// Wrap turns err into a CLIError with err's message. It returns nil for nil.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return newError(category, err.Error(), remediation)
}

// WrapWithMessage is Wrap with message prepended to err's text.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return newError(category, fmt.Sprintf("%s: %v", message, err), remediation)
}

// IsCLIError reports whether err's chain holds a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
