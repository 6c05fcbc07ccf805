package config

import "sort"

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeFloat
	TypeDuration
	TypeString
	TypeEnum
	TypeList
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeDuration:
		return "duration"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// ConfigKeySchema describes a known configuration key.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g., "openai.model")
	Type          ConfigValueType // Expected value type
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
}

// KnownKeys is the registry of all known configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"project_name":        {Path: "project_name", Type: TypeString, Description: "Project name shown in the changelog title and the prompt"},
	"language":            {Path: "language", Type: TypeString, Description: "Language the release document is written in"},
	"docs_dir":            {Path: "docs_dir", Type: TypeString, Description: "Directory holding the changelog, index and context documents"},
	"out_dir":             {Path: "out_dir", Type: TypeString, Description: "Directory for release files (default: <docs_dir>/releases)"},
	"changelog_file":      {Path: "changelog_file", Type: TypeString, Description: "Cumulative changelog file name, relative to docs_dir"},
	"index_file":          {Path: "index_file", Type: TypeString, Description: "Documentation index file name, updated only when it exists"},
	"context_file":        {Path: "context_file", Type: TypeString, Description: "Quick-context document fed to the prompt"},
	"conventions_heading": {Path: "conventions_heading", Type: TypeString, Description: "Heading a new releases section is inserted before"},
	"limits.commits":      {Path: "limits.commits", Type: TypeInt, Description: "Maximum characters of commit log sent to the generator"},
	"limits.diff_stat":    {Path: "limits.diff_stat", Type: TypeInt, Description: "Maximum characters of diff-stat sent to the generator"},
	"limits.diff":         {Path: "limits.diff", Type: TypeInt, Description: "Maximum characters of diff sent to the generator"},
	"limits.context":      {Path: "limits.context", Type: TypeInt, Description: "Maximum characters of context sent to the generator"},
	"generator": {
		Path:          "generator",
		Type:          TypeEnum,
		AllowedValues: []string{"openai", "agent"},
		Description:   "Text generator used to write the release document",
	},
	"openai.model":        {Path: "openai.model", Type: TypeString, Description: "OpenAI chat model"},
	"openai.base_url":     {Path: "openai.base_url", Type: TypeString, Description: "OpenAI-compatible API root"},
	"openai.temperature":  {Path: "openai.temperature", Type: TypeFloat, Description: "Sampling temperature (0-2)"},
	"openai.max_tokens":   {Path: "openai.max_tokens", Type: TypeInt, Description: "Maximum tokens in the generated document"},
	"openai.timeout":      {Path: "openai.timeout", Type: TypeDuration, Description: "HTTP timeout for one generation request"},
	"agent.command":       {Path: "agent.command", Type: TypeString, Description: "Agent command template containing {{PROMPT}}"},
	"agent.timeout":       {Path: "agent.timeout", Type: TypeDuration, Description: "Maximum agent run time (0 = no timeout)"},
	"exclude_paths":       {Path: "exclude_paths", Type: TypeList, Description: "Doublestar globs removed from the change set"},
	"state_dir":           {Path: "state_dir", Type: TypeString, Description: "Directory for the run history"},
	"max_history_entries": {Path: "max_history_entries", Type: TypeInt, Description: "Maximum run history entries to retain"},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns every known key path in lexical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
