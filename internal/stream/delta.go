package stream

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
)

// ============================================================
// Chunk Payload Types (OpenAI-compatible)
// ============================================================

type chunkPayload struct {
	Choices []chunkChoice `json:"choices"`
}

type chunkChoice struct {
	Delta        chunkDelta `json:"delta"`
	FinishReason string     `json:"finish_reason"`
}

type chunkDelta struct {
	Content   string          `json:"content"`
	ToolCalls []toolCallDelta `json:"tool_calls"`
}

type toolCallDelta struct {
	Index    int    `json:"index"`
	ID       string `json:"id"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// ============================================================
// Tool Call Record
// ============================================================

// ToolCall is a tool invocation assembled from streamed fragments.
//
// There is no explicit completion delta in the protocol: a record is only
// known to be complete once the surrounding stream has ended. Callers must
// not act on it before then.
type ToolCall struct {
	// ID is the opaque call identifier, set by the first fragment that
	// carries one and never overwritten.
	ID string

	// Name is the function name, first-write-wins.
	Name string

	// Arguments is the JSON argument document, concatenated strictly in
	// fragment arrival order.
	Arguments string
}

// ============================================================
// Accumulator (Delta Merger)
// ============================================================

// Accumulator merges streamed deltas into a final answer and at most one
// tool-call record. One instance serves exactly one request's stream.
type Accumulator struct {
	answer    strings.Builder
	call      *ToolCall
	onContent func(string)
}

// NewAccumulator creates an accumulator. onContent, if non-nil, is invoked
// with each content fragment as it arrives, for live display.
func NewAccumulator(onContent func(string)) *Accumulator {
	return &Accumulator{onContent: onContent}
}

// Ingest merges one data payload. Malformed payloads are skipped — one bad
// frame never terminates a healthy stream — and reported via the return
// value only so callers can count them.
func (a *Accumulator) Ingest(payload []byte) bool {
	var chunk chunkPayload
	if err := json.Unmarshal(payload, &chunk); err != nil {
		log.Debug().Err(err).Int("bytes", len(payload)).Msg("skipping malformed stream payload")
		return false
	}
	if len(chunk.Choices) == 0 {
		return false
	}

	delta := chunk.Choices[0].Delta

	if delta.Content != "" {
		a.answer.WriteString(delta.Content)
		if a.onContent != nil {
			a.onContent(delta.Content)
		}
	}

	for _, tc := range delta.ToolCalls {
		// Single in-flight tool call per turn: only slot 0 is tracked.
		if tc.Index != 0 {
			log.Debug().Int("index", tc.Index).Msg("ignoring tool call beyond first slot")
			continue
		}
		if a.call == nil {
			a.call = &ToolCall{}
		}
		if a.call.ID == "" && tc.ID != "" {
			a.call.ID = tc.ID
		}
		if a.call.Name == "" && tc.Function.Name != "" {
			a.call.Name = tc.Function.Name
		}
		a.call.Arguments += tc.Function.Arguments
	}

	return true
}

// Answer returns the content accumulated so far.
func (a *Accumulator) Answer() string {
	return a.answer.String()
}

// ToolCall returns the accumulated tool-call record, or nil if no tool-call
// fragment has arrived.
func (a *Accumulator) ToolCall() *ToolCall {
	return a.call
}
