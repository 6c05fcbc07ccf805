package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndcmsl/workflows/internal/history"
)

func seedHistory(t *testing.T, ws *workspace) {
	t.Helper()
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, history.SaveHistory(ws.stateDir, &history.HistoryFile{Entries: []history.HistoryEntry{
		{Timestamp: base, Command: "generate", Artifact: "2026-04-01_release.md", AllowedFiles: 3, ExitCode: 0, Duration: "2s"},
		{Timestamp: base.Add(time.Hour), Command: "generate", AllowedFiles: 3, ExitCode: 1, Duration: "1s"},
		{Timestamp: base.Add(2 * time.Hour), Command: "generate", Artifact: "2026-04-01_release_2.md", AllowedFiles: 4, Violations: 2, ExitCode: 0, Duration: "3s"},
	}}))
}

func TestHistory(t *testing.T) {
	tests := map[string]struct {
		args        []string
		seed        bool
		wantCode    int
		wantContain []string
		wantMissing []string
	}{
		"empty history": {
			wantContain: []string{"No history available."},
		},
		"all entries": {
			seed:        true,
			wantContain: []string{"2026-04-01_release.md", "2026-04-01_release_2.md", "violations=2", "exit=1"},
		},
		"limit keeps most recent": {
			args:        []string{"--limit", "1"},
			seed:        true,
			wantContain: []string{"2026-04-01_release_2.md"},
			wantMissing: []string{"2026-04-01_release.md "},
		},
		"failed only": {
			args:        []string{"--failed"},
			seed:        true,
			wantContain: []string{"exit=1", "-  "},
			wantMissing: []string{"release_2"},
		},
		"negative limit": {
			args:     []string{"--limit", "-1"},
			wantCode: 3,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ws := newWorkspace(t, sampleDoc)
			if tt.seed {
				seedHistory(t, ws)
			}

			stdout, stderr, code := ws.run(t, append([]string{"history"}, tt.args...)...)

			assert.Equal(t, tt.wantCode, code, "stderr: %s", stderr)
			for _, want := range tt.wantContain {
				assert.Contains(t, stdout, want)
			}
			for _, missing := range tt.wantMissing {
				assert.NotContains(t, stdout, missing)
			}
		})
	}
}

func TestHistory_Clear(t *testing.T) {
	ws := newWorkspace(t, sampleDoc)
	seedHistory(t, ws)

	stdout, _, code := ws.run(t, "history", "--clear")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "History cleared.")

	hist, err := history.LoadHistory(ws.stateDir)
	require.NoError(t, err)
	assert.Empty(t, hist.Entries)
}

func TestFilterEntries(t *testing.T) {
	t.Parallel()

	entries := []history.HistoryEntry{
		{Command: "generate", ExitCode: 0},
		{Command: "generate", ExitCode: 1},
		{Command: "generate", ExitCode: 5},
	}

	tests := map[string]struct {
		failedOnly bool
		limit      int
		wantCodes  []int
	}{
		"no filter":        {wantCodes: []int{0, 1, 5}},
		"limit":            {limit: 2, wantCodes: []int{1, 5}},
		"failed":           {failedOnly: true, wantCodes: []int{1, 5}},
		"failed and limit": {failedOnly: true, limit: 1, wantCodes: []int{5}},
		"limit above size": {limit: 10, wantCodes: []int{0, 1, 5}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var codes []int
			for _, e := range filterEntries(entries, tt.failedOnly, tt.limit) {
				codes = append(codes, e.ExitCode)
			}
			assert.Equal(t, tt.wantCodes, codes)
		})
	}
}
