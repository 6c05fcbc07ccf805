package inputs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		max  int
		want string
	}{
		"under limit":    {in: "abc", max: 5, want: "abc"},
		"at limit":       {in: "abcde", max: 5, want: "abcde"},
		"disabled":       {in: "abcdef", max: 0, want: "abcdef"},
		"over limit":     {in: "abcdef", max: 4, want: "abcd\n\n... [TRUNCATED - 6 chars total, showing first 4]"},
		"counts runes":   {in: "ñandú!", max: 5, want: "ñandú\n\n... [TRUNCATED - 6 chars total, showing first 5]"},
		"empty":          {in: "", max: 3, want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
		})
	}
}

func TestTruncationMarker_GroupsThousands(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\n\n... [TRUNCATED - 123,456 chars total, showing first 80,000]", TruncationMarker(123456, 80000))
}

func TestDecode_ReplacesInvalidBytes(t *testing.T) {
	t.Parallel()

	got := Decode([]byte("ok \xff end"))
	assert.Equal(t, "ok � end", got)
	assert.Equal(t, "plain ñ", Decode([]byte("plain ñ")))
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "commits.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc123 fix cart\n"), 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123 fix cart\n", got)

	missing, err := ReadFile(filepath.Join(dir, "absent.txt"))
	require.NoError(t, err)
	assert.Empty(t, missing)

	empty, err := ReadFile("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLoadAndForPrompt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}

	b, err := Load(Paths{
		Commits:  write("commits.txt", "c1\nc2"),
		DiffStat: write("stat.txt", "a.go | 1 +"),
		Diff:     write("diff.txt", strings.Repeat("x", 50)),
		FileList: write("files.txt", strings.Repeat("f", 50)),
	})
	require.NoError(t, err)
	assert.Equal(t, "c1\nc2", b.Commits)
	assert.Empty(t, b.Context)

	p := b.ForPrompt(Limits{Diff: 10})
	assert.True(t, strings.HasPrefix(p.Diff, strings.Repeat("x", 10)+"\n\n... [TRUNCATED - 50 chars total"))
	assert.Equal(t, b.FileList, p.FileList)
	assert.Equal(t, b.Commits, p.Commits)
}

func TestDefaultLimits(t *testing.T) {
	t.Parallel()

	l := DefaultLimits()
	assert.Equal(t, 80_000, l.Diff)
	assert.Equal(t, 20_000, l.DiffStat)
	assert.Equal(t, 10_000, l.Commits)
	assert.Equal(t, 6_000, l.Context)
}
