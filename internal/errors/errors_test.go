package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"prerequisite":  {category: Prerequisite, want: "Prerequisite Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"generation":    {category: Generation, want: "Generation Error"},
		"unknown":       {category: ErrorCategory(99), want: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestAsCLIError_Wrapped(t *testing.T) {
	t.Parallel()

	inner := NewGenerationError("boom")
	wrapped := fmt.Errorf("running: %w", inner)

	assert.True(t, IsCLIError(wrapped))
	assert.Same(t, inner, AsCLIError(wrapped))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
	assert.False(t, IsCLIError(nil))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "msg"))

	err := WrapWithMessage(stderrors.New("timeout"), Generation, "document generation failed", "retry")
	require.NotNil(t, err)
	assert.Equal(t, "document generation failed: timeout", err.Error())
	assert.Equal(t, Generation, err.Category)
	assert.Equal(t, []string{"retry"}, err.Remediation)
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	out := FormatErrorPlain(NoInputSource())

	assert.Contains(t, out, "Error [Argument Error]: no input source given\n")
	assert.Contains(t, out, "Usage: reldocs generate --commits FILE")
	assert.Contains(t, out, "To fix this:\n")
	assert.Contains(t, out, "  • Pass --commits and --diff-stat at least\n")
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestMessages(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      *CLIError
		category ErrorCategory
		contains string
	}{
		"missing document": {err: MissingDocument("x.md"), category: Prerequisite, contains: "document not found: x.md"},
		"conflict":         {err: ConflictingSources(), category: Argument, contains: "cannot be combined"},
		"config":           {err: ConfigLoadFailed(stderrors.New("bad")), category: Configuration, contains: "bad"},
		"api key":          {err: MissingAPIKey("OPENAI_API_KEY"), category: Configuration, contains: "OPENAI_API_KEY is not set"},
		"generation":       {err: GenerationFailed(stderrors.New("503")), category: Generation, contains: "503"},
		"empty generation": {err: EmptyGeneration(), category: Generation, contains: "empty document"},
		"validation":       {err: ValidationFailed(2), category: Runtime, contains: "2 file(s)"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Contains(t, tt.err.Error(), tt.contains)
			assert.NotEmpty(t, tt.err.Remediation)
		})
	}
}
