package changeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAllowedSet(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		explicit  string
		extracted []string
		want      []string
	}{
		"both empty": {
			want: []string{},
		},
		"diff stat only": {
			extracted: []string{"modules/foo/foo.php"},
			want:      []string{"modules/foo/foo.php"},
		},
		"explicit list only": {
			explicit: "a.go\n\n  b/c.go  \n",
			want:     []string{"a.go", "b/c.go"},
		},
		"union without intersection": {
			explicit:  "app/one.go\napp/two.go",
			extracted: []string{"app/two.go", "lib/three.go"},
			want:      []string{"app/one.go", "app/two.go", "lib/three.go"},
		},
		"different roots kept distinct": {
			explicit:  "repo/src/a.go",
			extracted: []string{"src/a.go"},
			want:      []string{"repo/src/a.go", "src/a.go"},
		},
		"exact duplicates collapse": {
			explicit:  "x.go\nx.go\n./x.go",
			extracted: []string{"x.go", "x.go"},
			want:      []string{"x.go"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			set := NewAllowedSet(tt.explicit, tt.extracted)
			assert.ElementsMatch(t, tt.want, set.Files())
			assert.Equal(t, len(tt.want), set.Len())
		})
	}
}

func TestAllowedSet_SupersetOfInputs(t *testing.T) {
	t.Parallel()

	explicit := "a/1.go\nb/2.go\n"
	extracted := Extract("c/3.go | 1 +\na/1.go | 2 ++\n 2 files changed, 3 insertions(+)")
	set := NewAllowedSet(explicit, extracted)

	for _, f := range []string{"a/1.go", "b/2.go", "c/3.go"} {
		assert.True(t, set.Contains(f), "missing %s", f)
	}
	assert.Equal(t, 3, set.Len())
}

func TestAllowedSet_Sorted(t *testing.T) {
	t.Parallel()

	set := NewAllowedSet("z.go\na.go\nm/b.go", nil)
	assert.Equal(t, []string{"a.go", "m/b.go", "z.go"}, set.Sorted())
}

func TestValidatePatterns(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidatePatterns([]string{"docs/**", "*.lock"}))
	err := ValidatePatterns([]string{"docs/[unterminated"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docs/[unterminated")
}

func TestFilterDiffStat(t *testing.T) {
	t.Parallel()

	stat := " docs/releases/2024-01-01_release.md | 40 ++++\n src/main.go | 2 +-\n 2 files changed, 41 insertions(+), 1 deletion(-)"
	got := FilterDiffStat(stat, []string{"docs/**"})

	assert.Equal(t, []string{"src/main.go"}, Extract(got))
	assert.Contains(t, got, "2 files changed")
	assert.Equal(t, stat, FilterDiffStat(stat, nil))
}

func TestFilterFileList(t *testing.T) {
	t.Parallel()

	got := FilterFileList("vendor/x/y.go\nsrc/a.go\ngo.sum", []string{"vendor/**", "go.sum"})
	assert.Equal(t, "src/a.go", got)
}
