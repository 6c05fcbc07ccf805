package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# reldocs configuration
# See 'reldocs config keys' for all options

# Project
project_name: ""                      # Shown in the changelog title and the prompt
language: English                     # Language of the generated document

# Documentation layout
docs_dir: docs                        # Directory holding the changelog and the index
out_dir: ""                           # Release files (default: <docs_dir>/releases)
changelog_file: CHANGELOG_AI.md       # Cumulative changelog, relative to docs_dir
index_file: 00_DOCS_INDEX.md          # Documentation index, updated only if present
context_file: 00_QUICK_CONTEXT.md     # Background context fed to the prompt
conventions_heading: "## Conventions" # A new releases section goes before this heading

# Input truncation (characters)
limits:
  commits: 10000
  diff_stat: 20000
  diff: 80000
  context: 6000

# Generation
generator: openai                     # openai | agent
openai:
  model: gpt-4o
  base_url: https://api.openai.com/v1
  temperature: 0.1
  max_tokens: 4096
  timeout: 2m
agent:
  command: ""                         # e.g. "claude -p {{PROMPT}}"
  timeout: 10m

# Paths dropped from the change set (doublestar globs)
exclude_paths: []

# History
state_dir: ~/.reldocs/state           # Run history location
max_history_entries: 500              # Max run history entries to retain
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"project_name":        "",
		"language":            "English",
		"docs_dir":            "docs",
		"out_dir":             "",
		"changelog_file":      "CHANGELOG_AI.md",
		"index_file":          "00_DOCS_INDEX.md",
		"context_file":        "00_QUICK_CONTEXT.md",
		"conventions_heading": "## Conventions",
		// limits: character budgets applied before the inputs reach the prompt.
		"limits": map[string]interface{}{
			"commits":   10000,
			"diff_stat": 20000,
			"diff":      80000,
			"context":   6000,
		},
		"generator": "openai",
		"openai": map[string]interface{}{
			"model":       "gpt-4o",
			"base_url":    "https://api.openai.com/v1",
			"temperature": 0.1,
			"max_tokens":  4096,
			"timeout":     "2m",
		},
		"agent": map[string]interface{}{
			"command": "",
			"timeout": "10m",
		},
		"exclude_paths":       []string{},
		"state_dir":           "~/.reldocs/state",
		"max_history_entries": 500,
	}
}
