package history

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Writer appends runs to the history file, keeping at most MaxEntries.
// Calls on one Writer are serialized.
type Writer struct {
	StateDir string
	// MaxEntries caps the file; zero keeps everything.
	MaxEntries int
	// Warnings receives logging failures (default: os.Stderr).
	Warnings io.Writer

	mu sync.Mutex
}

// NewWriter returns a Writer for the history file in stateDir.
func NewWriter(stateDir string, maxEntries int) *Writer {
	return &Writer{StateDir: stateDir, MaxEntries: maxEntries}
}

// Run describes a finished reldocs run.
type Run struct {
	Command      string
	Artifact     string
	AllowedFiles int
	Violations   int
	ExitCode     int
	Duration     time.Duration
}

// Entry converts r to a history entry stamped with now.
func (r Run) Entry(now time.Time) HistoryEntry {
	return HistoryEntry{
		Timestamp:    now,
		Command:      r.Command,
		Artifact:     r.Artifact,
		AllowedFiles: r.AllowedFiles,
		Violations:   r.Violations,
		ExitCode:     r.ExitCode,
		Duration:     r.Duration.Round(time.Millisecond).String(),
	}
}

// LogRun records r. A history that cannot be written never fails the run;
// the problem is reported on Warnings.
func (w *Writer) LogRun(r Run) {
	w.LogEntry(r.Entry(time.Now()))
}

// LogEntry records entry, reporting failures on Warnings.
func (w *Writer) LogEntry(entry HistoryEntry) {
	if err := w.Append(entry); err != nil {
		out := w.Warnings
		if out == nil {
			out = os.Stderr
		}
		fmt.Fprintf(out, "Warning: failed to log history: %v\n", err)
	}
}

// Append adds entry to the history file and prunes the oldest entries.
func (w *Writer) Append(entry HistoryEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	file, err := LoadHistory(w.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	file.Entries = prune(append(file.Entries, entry), w.MaxEntries)

	if err := SaveHistory(w.StateDir, file); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// prune drops the oldest entries beyond max.
func prune(entries []HistoryEntry, max int) []HistoryEntry {
	if max <= 0 || len(entries) <= max {
		return entries
	}
	return entries[len(entries)-max:]
}
