package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoundTrips(t *testing.T) {
	cfg := Default()
	cfg.Reconcile.Policy = "strict"
	cfg.Scan.Ignore = []string{".das/", "*.bak"}

	content, err := Generate(cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(content, "# das configuration"))

	path := filepath.Join(t.TempDir(), ".das.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGenerateCommented(t *testing.T) {
	content, err := GenerateCommented(Default())
	require.NoError(t, err)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), "line %q should be commented", line)
	}

	path := filepath.Join(t.TempDir(), ".das.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded, "a commented file changes nothing")
}

func TestCommentOutConfigValues(t *testing.T) {
	in := "# header\n\n[scan]\nignore = []\n"
	assert.Equal(t, "# header\n\n[scan]\n# ignore = []\n", commentOutConfigValues(in))
}
