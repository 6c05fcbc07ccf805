// Package changelog folds release documents into the cumulative AI changelog.
//
// The changelog is a header block closed by a line holding only "---",
// followed by entries newest first, each separated by Separator. Merge keeps
// the header and inserts the new entry right after it.
package changelog
