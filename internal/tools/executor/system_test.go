package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBash(t *testing.T) {
	tool := &Bash{}

	t.Run("captures stdout and exit code", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]any{"command": "echo hello"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "hello\n[Exit code: 0]", result.Text())
	})

	t.Run("nonzero exit code reported in-band", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]any{"command": "exit 3"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Contains(t, result.Text(), "[Exit code: 3]")
	})

	t.Run("stderr appended after stdout", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]any{"command": "echo out; echo err >&2"})
		require.NoError(t, err)
		assert.Equal(t, "out\nerr\n[Exit code: 0]", result.Text())
	})

	t.Run("missing command parameter", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]any{})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Error: Missing 'command' parameter", result.Text())
	})

	t.Run("cancelled context reported in-band", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result, err := tool.Execute(ctx, map[string]any{"command": "sleep 10"})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Contains(t, result.Text(), "Error executing command")
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&ReadFile{})
	r.Register(&Bash{})
	r.Register(&ReadFile{}) // re-registration keeps order stable

	assert.Equal(t, []string{"read_file", "bash"}, r.List())

	tool, ok := r.Get("bash")
	require.True(t, ok)
	assert.Equal(t, "bash", tool.Name())

	_, ok = r.Get("unknown")
	assert.False(t, ok)
}
