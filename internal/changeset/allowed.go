package changeset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// AllowedSet is the authoritative collection of changed files for one run.
// It is built once and never mutated afterwards.
type AllowedSet struct {
	files map[string]struct{}
}

// NewAllowedSet unions the newline-delimited explicit file list with the
// extracted diff-stat paths. Both sources are kept in full: entries are only
// merged when their normalized strings are identical.
func NewAllowedSet(explicitList string, extracted []string) AllowedSet {
	set := AllowedSet{files: make(map[string]struct{})}
	for _, line := range strings.Split(explicitList, "\n") {
		set.add(line)
	}
	for _, f := range extracted {
		set.add(f)
	}
	return set
}

func (s AllowedSet) add(path string) {
	path = NormalizePath(path)
	if path == "" {
		return
	}
	s.files[path] = struct{}{}
}

// Contains reports whether path is an exact member of the set.
func (s AllowedSet) Contains(path string) bool {
	_, ok := s.files[path]
	return ok
}

// Len returns the number of distinct files.
func (s AllowedSet) Len() int {
	return len(s.files)
}

// Files returns the members in no particular order.
func (s AllowedSet) Files() []string {
	out := make([]string, 0, len(s.files))
	for f := range s.files {
		out = append(out, f)
	}
	return out
}

// Sorted returns the members in lexical order, for display.
func (s AllowedSet) Sorted() []string {
	out := s.Files()
	sort.Strings(out)
	return out
}

// ValidatePatterns returns an error for the first malformed doublestar pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// MatchesAny reports whether path matches at least one doublestar pattern.
// Patterns are assumed valid; a malformed pattern simply does not match.
func MatchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

// FilterDiffStat drops stat lines whose path matches an exclude pattern. The
// summary line and unparseable lines pass through untouched.
func FilterDiffStat(diffStat string, patterns []string) string {
	if len(patterns) == 0 {
		return diffStat
	}
	lines := strings.Split(diffStat, "\n")
	kept := lines[:0]
	for _, line := range lines {
		path, _, found := strings.Cut(line, "|")
		if found && !IsSummaryLine(line) && MatchesAny(patterns, NormalizePath(path)) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// FilterFileList drops lines of a newline-delimited file list that match an
// exclude pattern.
func FilterFileList(list string, patterns []string) string {
	if len(patterns) == 0 {
		return list
	}
	var kept []string
	for _, line := range strings.Split(list, "\n") {
		if p := NormalizePath(line); p != "" && MatchesAny(patterns, p) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
