// Package agent drives the request / tool-execution / follow-up loop on top
// of the streaming client and the local tool dispatcher.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zfifteen/Grok-Codex/internal/conversation"
	"github.com/zfifteen/Grok-Codex/internal/errors"
	"github.com/zfifteen/Grok-Codex/internal/model"
	"github.com/zfifteen/Grok-Codex/internal/stats"
)

// Streamer issues one streaming chat completion request.
type Streamer interface {
	StreamChat(ctx context.Context, req *model.Request, onContent func(string)) (*model.StreamResult, error)
}

// Dispatcher executes local tools and describes them to the API.
type Dispatcher interface {
	Invoke(ctx context.Context, name, argsJSON string) string
	Declarations() []model.Tool
}

// Events carries the display callbacks invoked during a turn. Any field may
// be nil.
type Events struct {
	// OnContent receives each content fragment as it streams in.
	OnContent func(fragment string)

	// OnToolCall fires before a tool is executed.
	OnToolCall func(name, arguments string)

	// OnToolResult fires after a tool has produced its result text.
	OnToolResult func(name, result string)
}

// Config configures the orchestrator.
type Config struct {
	Model     string
	MaxTokens int

	// MaxToolCycles bounds the number of tool executions within one user
	// turn before the turn is aborted.
	MaxToolCycles int
}

// Orchestrator owns the conversation history and runs the chat loop: send
// the full history, stream the response, execute at most one tool call per
// response, and follow up until the model answers with plain content.
type Orchestrator struct {
	client    Streamer
	tools     Dispatcher
	history   *conversation.History
	events    Events
	collector *stats.Collector

	modelName     string
	maxTokens     int
	maxToolCycles int
}

// New creates an orchestrator with a freshly seeded history.
func New(client Streamer, tools Dispatcher, systemInstruction string, cfg Config, events Events, collector *stats.Collector) *Orchestrator {
	return &Orchestrator{
		client:        client,
		tools:         tools,
		history:       conversation.NewHistory(systemInstruction),
		events:        events,
		collector:     collector,
		modelName:     cfg.Model,
		maxTokens:     cfg.MaxTokens,
		maxToolCycles: cfg.MaxToolCycles,
	}
}

// SetModel switches the model used for subsequent turns. History is kept.
func (o *Orchestrator) SetModel(name string) {
	o.modelName = name
}

// Model returns the model used for subsequent turns.
func (o *Orchestrator) Model() string {
	return o.modelName
}

// History exposes the conversation history, primarily for inspection.
func (o *Orchestrator) History() *conversation.History {
	return o.history
}

// RunTurn processes one user input to completion and returns the final
// assistant answer. On a request failure the history is rolled back to its
// pre-turn state so the same input can be retried without duplicated turns;
// tool side effects from completed cycles within the aborted turn have
// already happened and are not undone.
func (o *Orchestrator) RunTurn(ctx context.Context, input string) (string, error) {
	turnID := uuid.NewString()
	start := time.Now()
	baseline := o.history.Len()

	o.history.Append(conversation.UserTurn(input))

	ts := stats.TurnStats{}
	onContent := func(fragment string) {
		if ts.Deltas == 0 {
			ts.FirstToken = time.Since(start)
		}
		ts.Deltas++
		ts.ContentBytes += len(fragment)
		if o.events.OnContent != nil {
			o.events.OnContent(fragment)
		}
	}

	log.Debug().Str("turn", turnID).Str("model", o.modelName).Msg("turn started")

	for {
		result, err := o.client.StreamChat(ctx, &model.Request{
			Model:     o.modelName,
			Messages:  o.history.Snapshot(),
			Tools:     o.tools.Declarations(),
			MaxTokens: o.maxTokens,
		}, onContent)
		if err != nil {
			o.history.Truncate(baseline)
			if o.collector != nil {
				o.collector.RecordFailure()
			}
			log.Debug().Str("turn", turnID).Err(err).Msg("turn failed")
			return "", err
		}

		call := result.ToolCall
		if call == nil || call.Name == "" || call.Arguments == "" {
			// A response with no content appends nothing.
			if result.Answer != "" {
				o.history.Append(conversation.AssistantTurn(result.Answer))
			}
			ts.Duration = time.Since(start)
			if o.collector != nil {
				o.collector.RecordTurn(ts)
			}
			log.Debug().Str("turn", turnID).Int("tool_calls", ts.ToolCalls).Msg("turn complete")
			return result.Answer, nil
		}

		o.history.Append(conversation.AssistantToolCallTurn(result.Answer, call))
		if o.events.OnToolCall != nil {
			o.events.OnToolCall(call.Name, call.Arguments)
		}

		output := o.tools.Invoke(ctx, call.Name, call.Arguments)
		ts.ToolCalls++
		o.history.Append(conversation.ToolResultTurn(call.ID, output))
		if o.events.OnToolResult != nil {
			o.events.OnToolResult(call.Name, output)
		}
		log.Debug().Str("turn", turnID).Str("tool", call.Name).Int("cycle", ts.ToolCalls).Msg("tool cycle complete")

		if ts.ToolCalls >= o.maxToolCycles {
			if o.collector != nil {
				o.collector.RecordFailure()
			}
			return "", errors.NewBuilder(errors.CodeToolLoopExceeded,
				fmt.Sprintf("tool loop exceeded %d cycles without a final answer", o.maxToolCycles)).
				Permanent().
				WithSuggestion("Rephrase the request or raise max_tool_cycles in the config").
				Build()
		}
	}
}
