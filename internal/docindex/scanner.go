package docindex

import "strings"

// State is the position of the line scanner relative to the releases table.
type State int

const (
	// StateOutside means no releases heading has been seen yet.
	StateOutside State = iota
	// StateInSectionBeforeRows means a releases heading was seen but no table
	// row yet. Blank lines and prose are tolerated here.
	StateInSectionBeforeRows
	// StateInSectionAtRows means at least one table row has been seen.
	StateInSectionAtRows
	// StateExited means the table ended: a blank line after rows, or another heading.
	StateExited
)

func (s State) String() string {
	switch s {
	case StateOutside:
		return "outside"
	case StateInSectionBeforeRows:
		return "in_section_before_rows"
	case StateInSectionAtRows:
		return "in_section_at_rows"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Step advances the scanner by one line. row is true when line is a table
// row that the new entry may follow.
func Step(s State, line string) (next State, row bool) {
	if s == StateExited {
		return StateExited, false
	}
	if IsReleasesHeading(line) {
		return StateInSectionBeforeRows, false
	}
	if s == StateOutside {
		return StateOutside, false
	}

	switch {
	case isTableRow(line):
		return StateInSectionAtRows, true
	case isTableSeparator(line):
		return s, false
	case strings.TrimSpace(line) == "":
		if s == StateInSectionAtRows {
			return StateExited, false
		}
		return s, false
	case isHeading(line):
		return StateExited, false
	default:
		return s, false
	}
}

// lastRow returns the index of the last table row in the releases section, or
// -1 if the section has no rows.
func lastRow(lines []string) int {
	state := StateOutside
	last := -1
	for i, line := range lines {
		var row bool
		state, row = Step(state, line)
		if row {
			last = i
		}
		if state == StateExited {
			break
		}
	}
	return last
}

// IsReleasesHeading reports whether line is a markdown heading that mentions
// releases, case-insensitively.
func IsReleasesHeading(line string) bool {
	return isHeading(line) && strings.Contains(strings.ToLower(line), "releases")
}

func isHeading(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

func isTableRow(line string) bool {
	return strings.HasPrefix(line, "|") && !strings.Contains(line, "---")
}

func isTableSeparator(line string) bool {
	return strings.HasPrefix(line, "|") && strings.Contains(line, "---")
}

func hasReleasesSection(lines []string) bool {
	for _, line := range lines {
		if IsReleasesHeading(line) {
			return true
		}
	}
	return false
}
