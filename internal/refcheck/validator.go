// Package refcheck verifies that file references in generated text point at
// files that were actually changed.
//
// Only backtick-quoted tokens ending in a short extension are inspected, so a
// fabricated path mentioned in plain prose is never reported. The check is
// advisory: callers decide what to do with violations.
package refcheck

import (
	"regexp"
	"strings"

	"github.com/ndcmsl/workflows/internal/changeset"
)

// Status classifies a single file reference.
type Status int

const (
	// StatusValid means the reference matches a member of the allowed set.
	StatusValid Status = iota
	// StatusIgnored means the reference is a bare filename or a placeholder.
	StatusIgnored
	// StatusViolation means the reference names a file outside the allowed set.
	StatusViolation
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusIgnored:
		return "ignored"
	case StatusViolation:
		return "violation"
	default:
		return "unknown"
	}
}

// Finding is one reference found in the text and how it was classified.
type Finding struct {
	Reference string
	Status    Status
}

// Report is the outcome of scanning one document.
type Report struct {
	// Valid is true when there are no violations.
	Valid bool
	// Violations lists offending references in order of first appearance,
	// duplicates included.
	Violations []string
	// Findings holds every inspected reference, in order.
	Findings []Finding
}

var referencePattern = regexp.MustCompile("`([^`]*\\.\\w{1,5})`")

// References returns every backtick-quoted, extension-suffixed token in text,
// trimmed of whitespace and a leading "./".
func References(text string) []string {
	matches := referencePattern.FindAllStringSubmatch(text, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, changeset.NormalizePath(m[1]))
	}
	return refs
}

// Classify decides the status of a single normalized reference.
func Classify(ref string, allowed changeset.AllowedSet) Status {
	if IsPlaceholder(ref) {
		return StatusIgnored
	}
	if allowed.Contains(ref) {
		return StatusValid
	}
	for _, member := range allowed.Files() {
		if Matches(ref, member) {
			return StatusValid
		}
	}
	return StatusViolation
}

// IsPlaceholder reports whether ref should not be checked at all: bare file
// names without a directory, and templated paths such as themes/{vertical}/x.tpl.
func IsPlaceholder(ref string) bool {
	return !strings.Contains(ref, "/") || strings.Contains(ref, "{")
}

// Matches reports whether ref names member. Besides equality it accepts ref as
// a substring or suffix of member, which tolerates the two input sources using
// different path roots. A short ref can therefore match unrelated members; this
// looseness is intentional.
func Matches(ref, member string) bool {
	return ref == member ||
		strings.Contains(member, ref) ||
		strings.HasSuffix(member, ref)
}

// Validate scans text and classifies every file reference against allowed.
func Validate(text string, allowed changeset.AllowedSet) Report {
	report := Report{Violations: []string{}}
	for _, ref := range References(text) {
		status := Classify(ref, allowed)
		report.Findings = append(report.Findings, Finding{Reference: ref, Status: status})
		if status == StatusViolation {
			report.Violations = append(report.Violations, ref)
		}
	}
	report.Valid = len(report.Violations) == 0
	return report
}

// Count returns how many findings have the given status.
func (r Report) Count(status Status) int {
	n := 0
	for _, f := range r.Findings {
		if f.Status == status {
			n++
		}
	}
	return n
}
