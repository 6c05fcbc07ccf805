package errors

import "fmt"

// Common error messages for the reldocs CLI.
// These templates ensure consistent, actionable error messages.

// MissingDocument creates an error for a document to check that does not exist.
func MissingDocument(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("document not found: %s", path),
		"Pass the path of a generated release file",
		"Release files live in out_dir, by default <docs_dir>/releases",
	)
}

// ConflictingSources creates an error when both file inputs and a git range are given.
func ConflictingSources() *CLIError {
	return NewArgumentErrorWithUsage(
		"input files and --repo cannot be combined",
		"reldocs generate --commits FILE --diff-stat FILE --diff FILE [--file-list FILE]\n       reldocs generate --repo DIR [--from REV] [--to REV]",
		"Pass either the four input files or a repository range",
	)
}

// NoInputSource creates an error when neither input files nor a repository are given.
func NoInputSource() *CLIError {
	return NewArgumentErrorWithUsage(
		"no input source given",
		"reldocs generate --commits FILE --diff-stat FILE --diff FILE [--file-list FILE]\n       reldocs generate --repo DIR [--from REV] [--to REV]",
		"Pass --commits and --diff-stat at least",
		"Or point --repo at a git repository",
	)
}

// ConfigLoadFailed wraps an error raised while loading configuration.
func ConfigLoadFailed(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check .reldocs/config.yml and ~/.config/reldocs/config.yml for syntax errors",
		"Run 'reldocs config keys' to list valid keys",
	)
}

// MissingAPIKey creates an error for an unset OpenAI key.
func MissingAPIKey(envVar string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("%s is not set", envVar),
		fmt.Sprintf("Export %s before running reldocs", envVar),
		"Or switch to a local agent with: generator: agent",
	)
}

// GenerationFailed wraps an error returned by the text generator.
func GenerationFailed(err error) *CLIError {
	return WrapWithMessage(err, Generation,
		"document generation failed",
		"Nothing was written; rerun once the generator is reachable",
		"Run with --debug to see the request details",
	)
}

// EmptyGeneration creates an error for a generator that returned no text.
func EmptyGeneration() *CLIError {
	return NewGenerationError(
		"the generator returned an empty document",
		"Nothing was written",
		"Check the model name and max_tokens in the openai section of the config",
	)
}

// ValidationFailed creates an error for a document that references files
// outside the change set.
func ValidationFailed(violations int) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("document references %d file(s) outside the change set", violations),
		"Remove or correct the listed references",
		"Drop --strict to report violations without failing",
	)
}
