// Package release persists generated release notes as dated files.
package release

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// DateLayout is the date prefix used in release file names.
const DateLayout = "2006-01-02"

// Writer creates release files in Dir. Existing files are never overwritten.
type Writer struct {
	Dir string
}

// NewWriter returns a Writer for dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// FileName returns the release file name for date and sequence number n.
// The first file of a day has no counter; later ones are suffixed _2, _3, ...
func FileName(date time.Time, n int) string {
	day := date.Format(DateLayout)
	if n <= 1 {
		return day + "_release.md"
	}
	return fmt.Sprintf("%s_release_%d.md", day, n)
}

// Write stores content under the first unused name for date and returns that
// name. Files are created with O_EXCL, so a concurrent writer that claims a
// name first pushes this call on to the next counter.
func (w *Writer) Write(content string, date time.Time) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating release directory: %w", err)
	}

	for n := 1; ; n++ {
		name := FileName(date, n)
		f, err := os.OpenFile(filepath.Join(w.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating %s: %w", name, err)
		}
		if err := writeAndClose(f, content); err != nil {
			return "", fmt.Errorf("writing %s: %w", name, err)
		}
		return name, nil
	}
}

func writeAndClose(f *os.File, content string) error {
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
