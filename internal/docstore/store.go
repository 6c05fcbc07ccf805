// Package docstore reads and writes long-lived documentation files as whole
// documents.
//
// Callers must serialize invocations: a Read followed by a Write is not
// protected against another process writing in between.
package docstore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Store addresses documents by name relative to a directory.
type Store struct {
	Dir string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Path returns the filesystem path of the named document.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Exists reports whether the named document exists.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Read returns the full content of the named document. A missing document is
// not an error: exists is false and content is empty.
func (s *Store) Read(name string) (content string, exists bool, err error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", true, fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), true, nil
}

// Write replaces the named document with content. The data goes to a
// temporary file in the same directory which is then renamed over the target,
// so readers never observe a half-written document. The existing file mode is
// kept; new files get 0644.
func (s *Store) Write(name, content string) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", s.Dir, err)
	}

	target := s.Path(name)
	mode := fs.FileMode(0o644)
	if st, err := os.Stat(target); err == nil && st.Mode().Perm() != 0 {
		mode = st.Mode().Perm()
	}

	tmp, err := os.CreateTemp(s.Dir, "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file for %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("setting mode on %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}
