// Package docindex keeps the releases table of a documentation index up to date.
//
// The index is a hand-maintained markdown file. Only one part of it is
// managed here: a section whose heading mentions "releases" and the table
// beneath it. Everything else is left byte-for-byte intact.
//
// Finding the table is a line scan driven by a small state machine (see
// State). The scan is deliberately simple and can misplace a row in unusual
// layouts, for example a releases table split by blank lines; such documents
// should be fixed by hand.
package docindex
