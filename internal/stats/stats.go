// Package stats collects session and per-turn counters for the exit summary.
package stats

import (
	"fmt"
	"sync"
	"time"
)

// TurnStats captures the measurable shape of one completed request cycle.
type TurnStats struct {
	// Deltas is the number of content fragments received.
	Deltas int

	// ContentBytes is the total content length received.
	ContentBytes int

	// ToolCalls is the number of tool invocations in the turn.
	ToolCalls int

	// FirstToken is the latency to the first content fragment, zero when
	// the response carried no content.
	FirstToken time.Duration

	// Duration is the wall time of the whole turn.
	Duration time.Duration
}

// Collector accumulates counters across a session. Safe for concurrent use.
type Collector struct {
	mu sync.Mutex

	started   time.Time
	turns     int
	failed    int
	toolCalls int
	deltas    int
	bytes     int
}

// NewCollector starts a session clock.
func NewCollector() *Collector {
	return &Collector{started: time.Now()}
}

// RecordTurn folds one completed turn into the session totals.
func (c *Collector) RecordTurn(ts TurnStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns++
	c.toolCalls += ts.ToolCalls
	c.deltas += ts.Deltas
	c.bytes += ts.ContentBytes
}

// RecordFailure counts a turn that ended in error.
func (c *Collector) RecordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed++
}

// Summary renders the session totals for display on exit.
func (c *Collector) Summary() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.started).Round(time.Second)
	s := fmt.Sprintf("Session: %s, %d turn(s), %d tool call(s), %d byte(s) received",
		elapsed, c.turns, c.toolCalls, c.bytes)
	if c.failed > 0 {
		s += fmt.Sprintf(", %d failed", c.failed)
	}
	return s
}

// Turns returns the number of completed turns.
func (c *Collector) Turns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.turns
}
