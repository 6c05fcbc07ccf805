// Package history records reldocs runs in a YAML file under the state
// directory so past generations can be listed with 'reldocs history'.
package history

import "time"

// HistoryFileName is the file inside the state directory holding the history.
const HistoryFileName = "history.yaml"

// HistoryEntry is one recorded run.
type HistoryEntry struct {
	Timestamp time.Time `yaml:"timestamp"`
	Command   string    `yaml:"command"`
	// Artifact is the release file name, empty when nothing was written.
	Artifact     string `yaml:"artifact,omitempty"`
	AllowedFiles int    `yaml:"allowed_files"`
	Violations   int    `yaml:"violations"`
	ExitCode     int    `yaml:"exit_code"`
	Duration     string `yaml:"duration"`
}

// HistoryFile is the on-disk layout of the history.
type HistoryFile struct {
	Entries []HistoryEntry `yaml:"entries"`
}
