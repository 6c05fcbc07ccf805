// Package inputs loads the text inputs of a run: commit log, diff-stat, diff,
// explicit file list and the quick-context document.
package inputs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Limits caps how many characters of each input reach the prompt.
// A zero limit disables truncation.
type Limits struct {
	Commits  int `koanf:"commits" yaml:"commits" validate:"gte=0"`
	DiffStat int `koanf:"diff_stat" yaml:"diff_stat" validate:"gte=0"`
	Diff     int `koanf:"diff" yaml:"diff" validate:"gte=0"`
	Context  int `koanf:"context" yaml:"context" validate:"gte=0"`
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		Commits:  10_000,
		DiffStat: 20_000,
		Diff:     80_000,
		Context:  6_000,
	}
}

// Bundle holds the raw inputs of one run.
type Bundle struct {
	Commits  string
	DiffStat string
	Diff     string
	FileList string
	Context  string
}

// Paths locates each input on disk. Empty paths read as empty text.
type Paths struct {
	Commits  string
	DiffStat string
	Diff     string
	FileList string
	Context  string
}

// Load reads every input named in p without truncating anything.
func Load(p Paths) (Bundle, error) {
	var b Bundle
	targets := []struct {
		path string
		dst  *string
	}{
		{p.Commits, &b.Commits},
		{p.DiffStat, &b.DiffStat},
		{p.Diff, &b.Diff},
		{p.FileList, &b.FileList},
		{p.Context, &b.Context},
	}
	for _, t := range targets {
		text, err := ReadFile(t.path)
		if err != nil {
			return Bundle{}, err
		}
		*t.dst = text
	}
	return b, nil
}

// ForPrompt returns a copy of b with each input truncated to its limit. The
// file list is passed through whole.
func (b Bundle) ForPrompt(l Limits) Bundle {
	return Bundle{
		Commits:  Truncate(b.Commits, l.Commits),
		DiffStat: Truncate(b.DiffStat, l.DiffStat),
		Diff:     Truncate(b.Diff, l.Diff),
		FileList: b.FileList,
		Context:  Truncate(b.Context, l.Context),
	}
}

// ReadFile returns the decoded content of path. A missing file or an empty
// path yields empty text rather than an error.
func ReadFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data), nil
}

// Decode interprets data as UTF-8, replacing invalid sequences with U+FFFD.
func Decode(data []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

var numbers = message.NewPrinter(language.English)

// Truncate shortens s to max characters and appends a marker giving the
// original length. Lengths are counted in runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	total := utf8.RuneCountInString(s)
	if total <= max {
		return s
	}
	cut := 0
	for i := range s {
		if cut == max {
			return s[:i] + TruncationMarker(total, max)
		}
		cut++
	}
	return s
}

// TruncationMarker is the note appended to truncated text.
func TruncationMarker(total, shown int) string {
	return numbers.Sprintf("\n\n... [TRUNCATED - %d chars total, showing first %d]", total, shown)
}
