package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/ndcmsl/workflows/internal/cli/shared"
)

// workspace is a temporary project with a config, input files and an agent
// script that prints a fixed document.
type workspace struct {
	dir      string
	config   string
	docsDir  string
	stateDir string
}

const sampleDoc = "# Release Notes - 2026-04-01\n\n## Executive summary\nReworked `src/app.go`.\n"

// newWorkspace isolates the user config directory, so tests using it must not
// run in parallel.
func newWorkspace(t *testing.T, doc string) *workspace {
	t.Helper()
	color.NoColor = true

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)

	ws := &workspace{
		dir:      dir,
		config:   filepath.Join(dir, "reldocs.yml"),
		docsDir:  filepath.Join(dir, "docs"),
		stateDir: filepath.Join(dir, "state"),
	}
	ws.write(t, "doc.md", doc)
	ws.write(t, "agent.sh", "cat "+filepath.Join(dir, "doc.md")+"\n")
	ws.write(t, "reldocs.yml", strings.Join([]string{
		"project_name: demo",
		"docs_dir: " + ws.docsDir,
		"state_dir: " + ws.stateDir,
		"generator: agent",
		"agent:",
		"  command: sh " + filepath.Join(dir, "agent.sh") + " {{PROMPT}}",
		"  timeout: 30s",
		"",
	}, "\n"))
	ws.write(t, "commits.txt", "abc1234 rework app\n")
	ws.write(t, "stat.txt", " src/app.go | 3 ++-\n 1 file changed, 2 insertions(+), 1 deletion(-)\n")
	ws.write(t, "files.txt", "src/app.go\n")
	require.NoError(t, os.MkdirAll(ws.docsDir, 0o755))
	return ws
}

func (ws *workspace) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(ws.dir, name), []byte(content), 0o644))
}

func (ws *workspace) path(name string) string {
	return filepath.Join(ws.dir, name)
}

// inputFlags returns the file source flags for the workspace inputs.
func (ws *workspace) inputFlags() []string {
	return []string{
		"--commits", ws.path("commits.txt"),
		"--diff-stat", ws.path("stat.txt"),
		"--file-list", ws.path("files.txt"),
	}
}

// run executes a fresh root command and returns stdout, stderr and the exit code.
func (ws *workspace) run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	return ws.runWithConfig(t, ws.config, args...)
}

func (ws *workspace) runWithConfig(t *testing.T, configPath string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--config", configPath))
	err := execute(context.Background(), root)
	return stdout.String(), stderr.String(), shared.ExitCode(err)
}
