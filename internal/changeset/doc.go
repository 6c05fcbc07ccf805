// Package changeset derives the authoritative set of files touched by a change.
//
// It provides:
//   - Extract, which reads `git diff --stat` style summaries into paths
//   - AllowedSet, the deduplicated union of an explicit file list and the
//     extracted paths; nothing outside it may be described as modified
package changeset
