package docindex

import (
	"fmt"
	"strings"
)

// Outcome reports what Merge did to the index.
type Outcome int

const (
	// OutcomeMissing means there was no index to update. Merge itself never
	// returns it; callers use it when the index file does not exist.
	OutcomeMissing Outcome = iota
	// OutcomeAlreadyPresent means the artifact is already referenced.
	OutcomeAlreadyPresent
	// OutcomeSectionCreated means a releases section and table were added.
	OutcomeSectionCreated
	// OutcomeRowInserted means a row was added to the existing table.
	OutcomeRowInserted
	// OutcomeNoTable means a releases heading exists but no table row could be
	// found under it; the index is left unchanged.
	OutcomeNoTable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMissing:
		return "missing"
	case OutcomeAlreadyPresent:
		return "already present"
	case OutcomeSectionCreated:
		return "section created"
	case OutcomeRowInserted:
		return "row inserted"
	case OutcomeNoTable:
		return "no table"
	default:
		return "unknown"
	}
}

// Changed reports whether the outcome modified the document.
func (o Outcome) Changed() bool {
	return o == OutcomeSectionCreated || o == OutcomeRowInserted
}

// Options names the files and headings the index refers to.
type Options struct {
	// ReleasesDir is the index-relative directory holding release files.
	ReleasesDir string
	// ChangelogFile is the index-relative path of the cumulative changelog.
	ChangelogFile string
	// ConventionsHeading is the heading a new section is placed before.
	ConventionsHeading string
	// SectionHeading is the heading of a newly created section. When empty
	// it is derived from ReleasesDir, see DefaultSectionHeading.
	SectionHeading string
}

// DefaultOptions returns the layout used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ReleasesDir:        "releases",
		ChangelogFile:      "CHANGELOG_AI.md",
		ConventionsHeading: "## Conventions",
	}
}

// DefaultSectionHeading names a releases section after the directory its
// links point into. It always mentions "releases", so the scanner finds it.
func DefaultSectionHeading(releasesDir string) string {
	return "### Auto-generated releases (`" + strings.TrimSuffix(releasesDir, "/") + "/`)"
}

func (o Options) sectionHeading() string {
	if o.SectionHeading != "" {
		return o.SectionHeading
	}
	return DefaultSectionHeading(o.ReleasesDir)
}

// Row returns the table row linking to artifact.
func Row(artifact string, opts Options) string {
	return fmt.Sprintf("| [%s](%s/%s) | Auto-generated release notes |", artifact, opts.ReleasesDir, artifact)
}

// Section returns the block inserted when the index has no releases section yet.
func Section(artifact string, opts Options) string {
	return "\n" + opts.sectionHeading() + "\n\n" +
		"| Document | Description |\n" +
		"|-----------|-------------|\n" +
		Row(artifact, opts) + "\n" +
		fmt.Sprintf("| [%s](%s) | Cumulative history of all releases |\n\n", opts.ChangelogFile, opts.ChangelogFile)
}

// Merge adds a row for artifact to the releases table of content.
//
// The call is idempotent: if artifact is mentioned anywhere in content the
// document is returned unchanged.
func Merge(content, artifact string, opts Options) (string, Outcome) {
	if strings.Contains(content, artifact) {
		return content, OutcomeAlreadyPresent
	}

	lines := strings.Split(content, "\n")
	if !hasReleasesSection(lines) {
		return insertSection(content, Section(artifact, opts), opts.ConventionsHeading), OutcomeSectionCreated
	}

	idx := lastRow(lines)
	if idx == -1 {
		return content, OutcomeNoTable
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:idx+1]...)
	out = append(out, Row(artifact, opts))
	out = append(out, lines[idx+1:]...)
	return strings.Join(out, "\n"), OutcomeRowInserted
}

// insertSection places block right before the first line starting with
// heading, or appends it when there is no such line.
func insertSection(content, block, heading string) string {
	if heading != "" {
		if strings.HasPrefix(content, heading) {
			return block + content
		}
		if i := strings.Index(content, "\n"+heading); i != -1 {
			return content[:i+1] + block + content[i+1:]
		}
	}
	return content + "\n" + block
}
