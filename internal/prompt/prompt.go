// Package prompt builds the instructions sent to the text generator.
package prompt

import (
	"fmt"
	"strings"
)

// SystemPrompt frames the generator as a documentation writer that never
// mentions unchanged files.
const SystemPrompt = "You are an expert technical writer documenting a software project. " +
	"Your first rule is to NEVER mention files that were not modified. " +
	"Document only what appears explicitly in the diff and the file list provided. " +
	"If you invent anything the response will be rejected."

// Data is everything the user prompt is assembled from.
type Data struct {
	Project  string
	Date     string
	Language string
	// Context is background documentation. It must not be used to infer changes.
	Context string
	// Files is the authoritative list of modified files.
	Files    []string
	Commits  string
	DiffStat string
	Diff     string
}

// Build renders the user prompt for d.
func Build(d Data) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are writing release documentation for %s.\n", valueOr(d.Project, "this project"))
	b.WriteString("Produce concise, useful notes so that AI assistants can quickly understand what changed.\n\n")

	b.WriteString("ABSOLUTE RULE\n")
	b.WriteString("The ONLY files changed in this release are listed under \"EXACT LIST OF MODIFIED FILES\".\n")
	b.WriteString("- Do not mention, describe or imply changes to any file that is not in that list.\n")
	b.WriteString("- Do not invent or infer changes that do not appear explicitly in the diff.\n")
	b.WriteString("- If a section has no modified files, write exactly: \"No changes in this release.\"\n")
	b.WriteString("- If the diff is truncated, say the information is partial and do not invent the rest.\n")
	b.WriteString("- Quote file paths in backticks exactly as they appear in the list.\n\n")

	section(&b, "PROJECT CONTEXT (reference only, never evidence of a change)", valueOr(d.Context, "(none)"))
	section(&b, "EXACT LIST OF MODIFIED FILES (SOURCE OF TRUTH)", fileList(d.Files))
	section(&b, "COMMITS SINCE THE LAST RELEASE", d.Commits)
	section(&b, "CHANGED FILES SUMMARY (git diff --stat)", d.DiffStat)
	section(&b, "CODE DIFF (may be truncated)", d.Diff)

	b.WriteString("--- OUTPUT FORMAT ---\n")
	b.WriteString("Write a Markdown document with exactly this structure:\n\n")
	fmt.Fprintf(&b, "# Release Notes - %s\n\n", d.Date)
	b.WriteString("## Executive summary\n[2-3 sentences based only on the commits and files above.]\n\n")
	b.WriteString("## Changes by area\n[One ### subsection per top-level directory that has modified files.]\n\n")
	b.WriteString("## Impact\n[Which parts of the product are affected, judged only from the modified paths.]\n\n")
	b.WriteString("## Context for AI\n[Notes derived only from the real diff: new classes, execution-flow changes, feature flags. ")
	b.WriteString("If nothing applies, write \"No relevant context changes.\"]\n\n")
	b.WriteString("## Modified files\n[The exact list from above, grouped by directory. Add nothing.]\n\n")

	b.WriteString("--- FINAL REMINDER ---\n")
	fmt.Fprintf(&b, "- Write in %s.\n", valueOr(d.Language, "English"))
	b.WriteString("- Be concise but precise.\n")
	b.WriteString("- Every statement must be verifiable against the diff provided.\n")
	return b.String()
}

func section(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "--- %s ---\n%s\n\n", title, strings.TrimRight(body, "\n"))
}

func fileList(files []string) string {
	if len(files) == 0 {
		return "(none)"
	}
	return strings.Join(files, "\n")
}

func valueOr(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
