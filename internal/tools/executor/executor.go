// Package executor provides the tool execution interface and the built-in
// tool implementations.
package executor

import (
	"context"
	"time"
)

// Tool represents a callable tool.
type Tool interface {
	// Name returns the tool's identifier.
	Name() string

	// Description returns what the tool does.
	Description() string

	// Execute runs the tool with the given input. The returned result is
	// always usable as conversation text; Execute itself only fails on
	// context cancellation.
	Execute(ctx context.Context, input map[string]any) (*Result, error)
}

// Result represents the result of a tool execution. Exactly one of Output
// and Error carries the text fed back into the conversation.
type Result struct {
	Success    bool   `json:"success"`
	Output     string `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Text returns the conversation-facing text of the result.
func (r *Result) Text() string {
	if r.Success {
		return r.Output
	}
	return r.Error
}

// NewSuccessResult creates a successful result.
func NewSuccessResult(output string) *Result {
	return &Result{
		Success: true,
		Output:  output,
	}
}

// NewErrorResult creates an error result from human-readable text.
func NewErrorResult(text string) *Result {
	return &Result{
		Success: false,
		Error:   text,
	}
}

// TimedResult wraps a result with duration.
func TimedResult(result *Result, start time.Time) *Result {
	result.DurationMs = time.Since(start).Milliseconds()
	return result
}

// Registry manages available tools for execution.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates a new tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) {
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns registered tool names in registration order.
func (r *Registry) List() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
