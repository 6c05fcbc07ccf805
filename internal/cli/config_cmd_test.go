package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ndcmsl/workflows/internal/config"
)

func TestConfigShow(t *testing.T) {
	ws := newWorkspace(t, sampleDoc)

	stdout, stderr, code := ws.run(t, "config", "show")
	require.Equal(t, 0, code, "stderr: %s", stderr)

	var shown config.Configuration
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &shown))
	assert.Equal(t, "demo", shown.ProjectName)
	assert.Equal(t, "agent", shown.Generator)
	assert.Equal(t, ws.docsDir, shown.DocsDir)
	assert.Equal(t, filepath.Join(ws.docsDir, "releases"), shown.OutDir)
}

func TestConfigKeys(t *testing.T) {
	ws := newWorkspace(t, sampleDoc)

	stdout, _, code := ws.run(t, "config", "keys")
	require.Equal(t, 0, code)

	for _, key := range config.SortedKeys() {
		assert.Contains(t, stdout, key)
	}
}

func TestConfigInit(t *testing.T) {
	ws := newWorkspace(t, sampleDoc)
	target := filepath.Join(ws.dir, "new", "config.yml")

	_, stderr, code := ws.runWithConfig(t, target, "config", "init")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfigTemplate(), string(data))

	_, stderr, code = ws.runWithConfig(t, target, "config", "init")
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "already exists")

	_, _, code = ws.runWithConfig(t, target, "config", "init", "--force")
	assert.Equal(t, 0, code)
}
