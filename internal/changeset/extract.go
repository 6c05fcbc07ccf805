package changeset

import (
	"strings"
)

// Extract returns the file paths listed in a diff-stat summary, in input order.
//
// Each line is expected in the form "<path> | <stats>". The trailing
// "N files changed, M insertions(+), K deletions(-)" line is skipped, and any
// line without a path before the first '|' is dropped silently. The result is
// not deduplicated.
func Extract(diffStat string) []string {
	files := []string{}
	for _, line := range strings.Split(strings.TrimSpace(diffStat), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || IsSummaryLine(line) {
			continue
		}
		path, _, found := strings.Cut(line, "|")
		if !found {
			continue
		}
		path = NormalizePath(path)
		if path == "" {
			continue
		}
		files = append(files, path)
	}
	return files
}

// IsSummaryLine reports whether line is the totals line git appends to --stat output.
func IsSummaryLine(line string) bool {
	return strings.Contains(line, "changed") &&
		(strings.Contains(line, "insertion") || strings.Contains(line, "deletion"))
}

// NormalizePath trims surrounding whitespace and a leading "./".
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimSpace(p[2:])
	}
	return p
}
