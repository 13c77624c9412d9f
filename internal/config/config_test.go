package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zfifteen/Grok-Codex/internal/errors"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultModel, cfg.API.Model)
	assert.Equal(t, 1024, cfg.API.MaxTokens)
	assert.Equal(t, 1<<20, cfg.Stream.BufferLimit)
	assert.Equal(t, 25, cfg.Agent.MaxToolCycles)
}

func TestLoad_OverridesStick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
base_url = "https://example.test/v1"
model = "grok-2-latest"
max_tokens = 2048

[agent]
max_tool_cycles = 5

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/v1", cfg.API.BaseURL)
	assert.Equal(t, "grok-2-latest", cfg.API.Model)
	assert.Equal(t, 2048, cfg.API.MaxTokens)
	assert.Equal(t, 5, cfg.Agent.MaxToolCycles)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched sections keep defaults.
	assert.Equal(t, 1<<20, cfg.Stream.BufferLimit)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api\nbase_url ="), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty base url", "[api]\nbase_url = \"\""},
		{"zero max tokens", "[api]\nmax_tokens = 0"},
		{"negative buffer limit", "[stream]\nbuffer_limit = -1"},
		{"zero tool cycles", "[agent]\nmax_tool_cycles = 0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.API.Model = "grok-beta"
	cfg.Agent.MaxToolCycles = 10
	require.NoError(t, cfg.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "grok-beta", reloaded.API.Model)
	assert.Equal(t, 10, reloaded.Agent.MaxToolCycles)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".grok-codex"), expandHome("~/.grok-codex"))
	assert.Equal(t, "/absolute/path", expandHome("/absolute/path"))
	assert.Equal(t, "", expandHome(""))
}
