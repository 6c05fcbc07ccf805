package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HistoryPath returns the history file location inside stateDir.
func HistoryPath(stateDir string) string {
	return filepath.Join(stateDir, HistoryFileName)
}

// LoadHistory reads the history from stateDir. A missing file yields an
// empty history.
func LoadHistory(stateDir string) (*HistoryFile, error) {
	data, err := os.ReadFile(HistoryPath(stateDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &HistoryFile{}, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var history HistoryFile
	if err := yaml.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parsing history %s: %w", HistoryPath(stateDir), err)
	}
	return &history, nil
}

// SaveHistory writes history to stateDir, creating the directory if needed.
func SaveHistory(stateDir string, history *HistoryFile) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	tmp := HistoryPath(stateDir) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Rename(tmp, HistoryPath(stateDir)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// ClearHistory removes every entry.
func ClearHistory(stateDir string) error {
	err := os.Remove(HistoryPath(stateDir))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
