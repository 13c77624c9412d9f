// Package model provides the xAI chat completions streaming client.
package model

import "github.com/zfifteen/Grok-Codex/internal/conversation"

// Tool is the wire form of a tool declaration sent with each request.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction describes one callable function to the model.
type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request is one outbound streaming chat completion request.
type Request struct {
	// Model is the model identifier.
	Model string

	// Messages is the full conversation snapshot, in history order.
	Messages []conversation.Turn

	// Tools declares the callable tools, if any.
	Tools []Tool

	// MaxTokens is the response token budget.
	MaxTokens int
}

// chatRequest is the JSON body shape of a chat completions request.
type chatRequest struct {
	Model      string              `json:"model"`
	Messages   []conversation.Turn `json:"messages"`
	Stream     bool                `json:"stream"`
	MaxTokens  int                 `json:"max_tokens,omitempty"`
	Tools      []Tool              `json:"tools,omitempty"`
	ToolChoice string              `json:"tool_choice,omitempty"`
}

// ============================================================
// Model Presets
// ============================================================

// Preset describes one selectable xAI model.
type Preset struct {
	// Name is the model identifier for the API.
	Name string

	// Label is the user-friendly display name.
	Label string

	// Description says when to use this model.
	Description string
}

// Presets lists the selectable xAI models. To add a model, append an entry;
// the selection menu picks it up automatically.
var Presets = []Preset{
	{
		Name:        "grok-code-fast-1",
		Label:       "Grok Code Fast",
		Description: "Optimized for fast coding tasks with balanced performance",
	},
	{
		Name:        "grok-2-latest",
		Label:       "Grok 2 Latest",
		Description: "Latest Grok 2 model with enhanced reasoning capabilities",
	},
	{
		Name:        "grok-2-1212",
		Label:       "Grok 2 (Dec 2024)",
		Description: "Grok 2 December 2024 snapshot with improved accuracy",
	},
	{
		Name:        "grok-beta",
		Label:       "Grok Beta",
		Description: "Beta version with experimental features and capabilities",
	},
}
