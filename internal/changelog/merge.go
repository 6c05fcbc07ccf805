package changelog

import (
	"fmt"
	"strings"
)

// Separator goes between two entries in the cumulative changelog.
const Separator = "\n\n---\n\n"

// headerMarker terminates the header block: a line holding only "---".
const headerMarker = "\n---\n"

// MergeMode reports how an entry was folded into the changelog.
type MergeMode int

const (
	// ModeCreated means no changelog existed and a new one was started.
	ModeCreated MergeMode = iota
	// ModePrepended means the entry was inserted right after the header.
	ModePrepended
	// ModeAppended means the header marker was missing and the entry was
	// appended at the end, so newest-first order no longer holds.
	ModeAppended
)

// String returns a short description of the mode.
func (m MergeMode) String() string {
	switch m {
	case ModeCreated:
		return "created"
	case ModePrepended:
		return "prepended"
	case ModeAppended:
		return "appended"
	default:
		return "unknown"
	}
}

// Header returns the fixed block that opens a new changelog for project. It
// ends with the marker line that Merge looks for.
func Header(project string) string {
	title := "# AI Changelog"
	if project != "" {
		title += " - " + project
	}
	return title + "\n\n" +
		"> Change history generated automatically to give AI assistants context.\n" +
		"> Each entry corresponds to one push to the main branch.\n" +
		"> The most recent entries appear first.\n\n" +
		"---\n\n"
}

// Merge folds entry into the existing changelog and returns the new document.
//
// Existing content is never removed or reordered. When exists is false a new
// document is built from header. Otherwise the entry is inserted after the
// first "---" line, ahead of every previous entry; if that line is missing the
// entry is appended instead.
func Merge(existing string, exists bool, entry, header string) (string, MergeMode) {
	entry = strings.TrimSpace(entry)

	if !exists {
		return header + entry + "\n", ModeCreated
	}

	idx := strings.Index(existing, headerMarker)
	if idx == -1 {
		return existing + Separator + entry, ModeAppended
	}

	split := idx + len(headerMarker)
	head, body := existing[:split], existing[split:]
	return head + "\n" + entry + Separator + body, ModePrepended
}

// MergeError describes a changelog that could not be written.
type MergeError struct {
	Path string
	Err  error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("updating changelog %s: %v", e.Path, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}
