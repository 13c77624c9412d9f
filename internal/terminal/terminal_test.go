package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayEvents(t *testing.T) {
	var buf bytes.Buffer
	events := DisplayEvents(&buf)

	events.OnContent("Hel")
	events.OnContent("lo")
	events.OnToolCall("list_dir", `{"dirpath":"."}`)
	events.OnToolResult("list_dir", "Contents of .:\n  [FILE] a.txt (3 bytes)")

	out := buf.String()
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, `list_dir({"dirpath":"."})`)
	// Tool result newlines are flattened for inline display.
	assert.Contains(t, out, "Contents of .:   [FILE] a.txt (3 bytes)")
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "short", summarize("short", 10))
	assert.Equal(t, "a b", summarize("a\nb", 10))

	long := strings.Repeat("x", 50)
	assert.Equal(t, long[:10]+"...", summarize(long, 10))
}
