// Package tools wires the local tool implementations to the chat loop.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/zfifteen/Grok-Codex/internal/model"
	"github.com/zfifteen/Grok-Codex/internal/tools/executor"
)

// Dispatcher routes assistant tool calls to their local implementations.
// Every invocation produces a result string for the conversation; failures
// are reported in-band as tool output rather than as errors, so a bad call
// never aborts a turn.
type Dispatcher struct {
	registry *executor.Registry
}

// NewDispatcher builds a dispatcher with the standard tool set registered.
func NewDispatcher() *Dispatcher {
	registry := executor.NewRegistry()
	registry.Register(&executor.ReadFile{})
	registry.Register(&executor.WriteFile{})
	registry.Register(&executor.ListDir{})
	registry.Register(&executor.Bash{})
	return &Dispatcher{registry: registry}
}

// Invoke executes the named tool with the given JSON argument payload and
// returns the textual result to feed back into the conversation.
func (d *Dispatcher) Invoke(ctx context.Context, name, argsJSON string) string {
	tool, ok := d.registry.Get(name)
	if !ok {
		log.Warn().Str("tool", name).Msg("unknown tool requested")
		return fmt.Sprintf("Error: Unknown tool '%s'", name)
	}

	args := map[string]any{}
	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			log.Warn().Str("tool", name).Err(err).Msg("malformed tool arguments")
			return "Error: Invalid arguments JSON"
		}
	}

	result, err := tool.Execute(ctx, args)
	if err != nil {
		return fmt.Sprintf("Error executing tool '%s': %v", name, err)
	}

	log.Debug().Str("tool", name).Bool("success", result.Success).Int64("duration_ms", result.DurationMs).Msg("tool executed")
	return result.Text()
}

// Declarations describes the registered tools in the function-calling
// schema the API expects.
func (d *Dispatcher) Declarations() []model.Tool {
	return []model.Tool{
		{
			Type: "function",
			Function: model.ToolFunction{
				Name:        "read_file",
				Description: "Read the contents of a file at the given path",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"filepath": map[string]any{
							"type":        "string",
							"description": "Path to the file to read",
						},
					},
					"required": []string{"filepath"},
				},
			},
		},
		{
			Type: "function",
			Function: model.ToolFunction{
				Name:        "write_file",
				Description: "Write content to a file at the given path",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"filepath": map[string]any{
							"type":        "string",
							"description": "Path to the file to write",
						},
						"content": map[string]any{
							"type":        "string",
							"description": "Content to write to the file",
						},
					},
					"required": []string{"filepath", "content"},
				},
			},
		},
		{
			Type: "function",
			Function: model.ToolFunction{
				Name:        "list_dir",
				Description: "List the contents of a directory",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"dirpath": map[string]any{
							"type":        "string",
							"description": "Path to the directory to list (default: current directory)",
						},
					},
					"required": []string{"dirpath"},
				},
			},
		},
		{
			Type: "function",
			Function: model.ToolFunction{
				Name:        "bash",
				Description: "Execute a bash command and return its output",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"command": map[string]any{
							"type":        "string",
							"description": "The bash command to execute",
						},
					},
					"required": []string{"command"},
				},
			},
		},
	}
}
