package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	c.RecordTurn(TurnStats{Deltas: 3, ContentBytes: 12, ToolCalls: 1, Duration: time.Second})
	c.RecordTurn(TurnStats{Deltas: 1, ContentBytes: 5})
	c.RecordFailure()

	assert.Equal(t, 2, c.Turns())

	summary := c.Summary()
	assert.Contains(t, summary, "2 turn(s)")
	assert.Contains(t, summary, "1 tool call(s)")
	assert.Contains(t, summary, "17 byte(s)")
	assert.Contains(t, summary, "1 failed")
}

func TestCollectorNoFailures(t *testing.T) {
	c := NewCollector()
	c.RecordTurn(TurnStats{})
	assert.NotContains(t, c.Summary(), "failed")
}
