package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndcmsl/workflows/internal/inputs"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadWithOptions(LoadOptions{SkipUserConfig: true})
	require.NoError(t, err)

	assert.Equal(t, "docs", cfg.DocsDir)
	assert.Equal(t, filepath.Join("docs", "releases"), cfg.OutDir)
	assert.Equal(t, "CHANGELOG_AI.md", cfg.ChangelogFile)
	assert.Equal(t, "00_DOCS_INDEX.md", cfg.IndexFile)
	assert.Equal(t, "00_QUICK_CONTEXT.md", cfg.ContextFile)
	assert.Equal(t, inputs.DefaultLimits(), cfg.Limits)
	assert.Equal(t, "openai", cfg.Generator)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.InDelta(t, 0.1, cfg.OpenAI.Temperature, 1e-9)
	assert.Equal(t, 4096, cfg.OpenAI.MaxTokens)
	assert.Equal(t, 2*time.Minute, cfg.OpenAI.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Agent.Timeout)
	assert.Equal(t, 500, cfg.MaxHistoryEntries)
	assert.NotContains(t, cfg.StateDir, "~")
}

func TestLoad_ProjectFiles(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name    string
		content string
		check   func(t *testing.T, cfg *Configuration)
	}{
		"yaml": {
			name: "config.yml",
			content: `project_name: Shop
docs_dir: __docs
generator: agent
agent:
  command: "claude -p {{PROMPT}}"
  timeout: 30s
limits:
  diff: 1000
exclude_paths:
  - "vendor/**"
`,
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "Shop", cfg.ProjectName)
				assert.Equal(t, "__docs", cfg.DocsDir)
				assert.Equal(t, filepath.Join("__docs", "releases"), cfg.OutDir)
				assert.Equal(t, "agent", cfg.Generator)
				assert.Equal(t, 30*time.Second, cfg.Agent.Timeout)
				assert.Equal(t, 1000, cfg.Limits.Diff)
				assert.Equal(t, 10000, cfg.Limits.Commits)
				assert.Equal(t, []string{"vendor/**"}, cfg.ExcludePaths)
			},
		},
		"json": {
			name:    "config.json",
			content: `{"out_dir": "build/releases", "openai": {"model": "gpt-4o-mini", "max_tokens": 2000}}`,
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "build/releases", cfg.OutDir)
				assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
				assert.Equal(t, 2000, cfg.OpenAI.MaxTokens)
				assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, tt.name, tt.content)
			cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipUserConfig: true})
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RELDOCS_OPENAI__MODEL", "gpt-4.1")
	t.Setenv("RELDOCS_LIMITS__DIFF", "123")
	t.Setenv("RELDOCS_PROJECT_NAME", "EnvShop")

	path := writeConfig(t, "config.yml", "project_name: FileShop\n")
	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipUserConfig: true})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4.1", cfg.OpenAI.Model)
	assert.Equal(t, 123, cfg.Limits.Diff)
	assert.Equal(t, "EnvShop", cfg.ProjectName)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content   string
		wantField string
	}{
		"unknown generator": {
			content:   "generator: bard\n",
			wantField: "generator",
		},
		"agent without placeholder": {
			content:   "generator: agent\nagent:\n  command: claude -p\n",
			wantField: "agent.command",
		},
		"bad exclude pattern": {
			content:   "exclude_paths:\n  - \"src/[\"\n",
			wantField: "exclude_paths",
		},
		"zero max tokens": {
			content:   "openai:\n  max_tokens: 0\n",
			wantField: "openai.max_tokens",
		},
		"negative limit": {
			content:   "limits:\n  diff: -1\n",
			wantField: "limits.diff",
		},
		"empty docs dir": {
			content:   "docs_dir: \"\"\n",
			wantField: "docs_dir",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, "config.yml", tt.content)
			_, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipUserConfig: true})
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestLoad_YAMLSyntaxError(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.yml", "docs_dir: docs\nlimits:\n  diff: [1\n")
	_, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipUserConfig: true})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Positive(t, verr.Line)
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	_, err := LoadWithOptions(LoadOptions{
		ProjectConfigPath: filepath.Join(t.TempDir(), "nope.yml"),
		SkipUserConfig:    true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want string
	}{
		"top level": {in: "RELDOCS_DOCS_DIR", want: "docs_dir"},
		"nested":    {in: "RELDOCS_OPENAI__BASE_URL", want: "openai.base_url"},
		"limits":    {in: "RELDOCS_LIMITS__DIFF_STAT", want: "limits.diff_stat"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, envTransform(tt.in))
		})
	}
}

func TestIndexOptions(t *testing.T) {
	t.Parallel()

	cfg := &Configuration{ChangelogFile: "HISTORY.md", ConventionsHeading: "## Convenciones"}
	opts := cfg.IndexOptions()

	assert.Equal(t, "HISTORY.md", opts.ChangelogFile)
	assert.Equal(t, "## Convenciones", opts.ConventionsHeading)
	assert.Empty(t, opts.ReleasesDir)
	assert.Empty(t, opts.SectionHeading)
}

func TestKnownKeysMatchDefaults(t *testing.T) {
	t.Parallel()

	var flat []string
	var walk func(prefix string, m map[string]interface{})
	walk = func(prefix string, m map[string]interface{}) {
		for k, v := range m {
			if nested, ok := v.(map[string]interface{}); ok {
				walk(prefix+k+".", nested)
				continue
			}
			flat = append(flat, prefix+k)
		}
	}
	walk("", GetDefaults())

	assert.ElementsMatch(t, SortedKeys(), flat)
	for _, key := range flat {
		_, err := GetKeySchema(key)
		assert.NoError(t, err, key)
	}

	_, err := GetKeySchema("nope")
	assert.ErrorAs(t, err, &ErrUnknownKey{})
}
