// Package conversation maintains the ordered, append-only turn log that is
// serialized into every outbound request.
package conversation

import "github.com/zfifteen/Grok-Codex/internal/stream"

// Role identifies the author of a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCallRef is the wire form of a tool call carried on an assistant turn.
type ToolCallRef struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall names the invoked function and its argument document.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Turn is one conversation entry. Turns are immutable once appended.
type Turn struct {
	Role       Role          `json:"role"`
	Content    string        `json:"content,omitempty"`
	ToolCalls  []ToolCallRef `json:"tool_calls,omitempty"`
	ToolCallID string        `json:"tool_call_id,omitempty"`
}

// UserTurn creates a user message turn.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn creates a plain assistant answer turn.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// AssistantToolCallTurn creates an assistant turn carrying a tool call.
func AssistantToolCallTurn(content string, call *stream.ToolCall) Turn {
	return Turn{
		Role:    RoleAssistant,
		Content: content,
		ToolCalls: []ToolCallRef{{
			ID:   call.ID,
			Type: "function",
			Function: FunctionCall{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		}},
	}
}

// ToolResultTurn creates a tool-result turn linked to the invoking call.
func ToolResultTurn(callID, result string) Turn {
	return Turn{Role: RoleTool, Content: result, ToolCallID: callID}
}

// History is the ordered turn log for one conversation. It grows
// monotonically: no deletion, no reordering. Not safe for concurrent use;
// each conversation owns its own History.
type History struct {
	turns []Turn
}

// NewHistory creates a history seeded with the system instruction as turn 0.
func NewHistory(systemInstruction string) *History {
	return &History{
		turns: []Turn{{Role: RoleSystem, Content: systemInstruction}},
	}
}

// Append adds a turn at the end of the log.
func (h *History) Append(turn Turn) {
	h.turns = append(h.turns, turn)
}

// Truncate discards turns beyond length n. It exists solely so a failed
// request can roll the log back to its pre-request state; it never removes
// committed turns from a completed exchange.
func (h *History) Truncate(n int) {
	if n >= 1 && n <= len(h.turns) {
		h.turns = h.turns[:n]
	}
}

// Snapshot returns the turns in conversation order. The returned slice is a
// copy; the underlying turns are immutable.
func (h *History) Snapshot() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of turns, including the system turn.
func (h *History) Len() int {
	return len(h.turns)
}
