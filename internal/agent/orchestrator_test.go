package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/zfifteen/Grok-Codex/internal/conversation"
	apperrors "github.com/zfifteen/Grok-Codex/internal/errors"
	"github.com/zfifteen/Grok-Codex/internal/model"
	"github.com/zfifteen/Grok-Codex/internal/stream"
	"github.com/zfifteen/Grok-Codex/internal/tools"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scriptedStep is one canned streaming response.
type scriptedStep struct {
	fragments []string
	call      *stream.ToolCall
	err       error
}

// scriptedStreamer replays canned responses and records each request.
type scriptedStreamer struct {
	steps    []scriptedStep
	requests []*model.Request
}

func (s *scriptedStreamer) StreamChat(ctx context.Context, req *model.Request, onContent func(string)) (*model.StreamResult, error) {
	s.requests = append(s.requests, req)
	if len(s.steps) == 0 {
		return nil, fmt.Errorf("unexpected request %d", len(s.requests))
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	if step.err != nil {
		return nil, step.err
	}
	var answer strings.Builder
	for _, f := range step.fragments {
		answer.WriteString(f)
		if onContent != nil {
			onContent(f)
		}
	}
	return &model.StreamResult{Answer: answer.String(), ToolCall: step.call}, nil
}

// nopDispatcher satisfies Dispatcher with a fixed result.
type nopDispatcher struct {
	invoked int
}

func (d *nopDispatcher) Invoke(ctx context.Context, name, argsJSON string) string {
	d.invoked++
	return "ok"
}

func (d *nopDispatcher) Declarations() []model.Tool { return nil }

func newOrchestrator(s Streamer, d Dispatcher, events Events) *Orchestrator {
	return New(s, d, "You are a helpful assistant.", Config{
		Model:         "grok-code-fast-1",
		MaxTokens:     1024,
		MaxToolCycles: 25,
	}, events, nil)
}

func TestRunTurnPlainAnswer(t *testing.T) {
	streamer := &scriptedStreamer{steps: []scriptedStep{
		{fragments: []string{"Hel", "lo"}},
	}}

	var echoed []string
	o := newOrchestrator(streamer, &nopDispatcher{}, Events{
		OnContent: func(f string) { echoed = append(echoed, f) },
	})

	answer, err := o.RunTurn(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello", answer)
	assert.Equal(t, []string{"Hel", "lo"}, echoed)

	turns := o.History().Snapshot()
	require.Len(t, turns, 3)
	assert.Equal(t, conversation.RoleSystem, turns[0].Role)
	assert.Equal(t, conversation.RoleUser, turns[1].Role)
	assert.Equal(t, "hi", turns[1].Content)
	assert.Equal(t, conversation.RoleAssistant, turns[2].Role)
	assert.Equal(t, "Hello", turns[2].Content)

	// The request carried the full history including the system turn.
	require.Len(t, streamer.requests, 1)
	assert.Len(t, streamer.requests[0].Messages, 2)
	assert.Equal(t, "grok-code-fast-1", streamer.requests[0].Model)
}

func TestRunTurnToolCycle(t *testing.T) {
	call := &stream.ToolCall{ID: "call_1", Name: "list_dir", Arguments: `{"dirpath":"."}`}
	streamer := &scriptedStreamer{steps: []scriptedStep{
		{call: call},
		{fragments: []string{"done"}},
	}}
	dispatcher := &nopDispatcher{}

	var toolCalls, toolResults []string
	o := newOrchestrator(streamer, dispatcher, Events{
		OnToolCall:   func(name, args string) { toolCalls = append(toolCalls, name) },
		OnToolResult: func(name, result string) { toolResults = append(toolResults, result) },
	})

	answer, err := o.RunTurn(context.Background(), "what is here?")
	require.NoError(t, err)
	assert.Equal(t, "done", answer)
	assert.Equal(t, 1, dispatcher.invoked)
	assert.Equal(t, []string{"list_dir"}, toolCalls)
	assert.Equal(t, []string{"ok"}, toolResults)

	// system, user, assistant tool call, tool result, final assistant.
	turns := o.History().Snapshot()
	require.Len(t, turns, 5)
	assert.Equal(t, conversation.RoleAssistant, turns[2].Role)
	require.Len(t, turns[2].ToolCalls, 1)
	assert.Equal(t, "call_1", turns[2].ToolCalls[0].ID)
	assert.Equal(t, conversation.RoleTool, turns[3].Role)
	assert.Equal(t, "call_1", turns[3].ToolCallID)
	assert.Equal(t, "ok", turns[3].Content)

	// The follow-up request saw the tool result.
	require.Len(t, streamer.requests, 2)
	assert.Len(t, streamer.requests[1].Messages, 4)
}

func TestRunTurnFailureRollsBack(t *testing.T) {
	streamer := &scriptedStreamer{steps: []scriptedStep{
		{err: apperrors.Temporary("API_TRANSPORT", "network request failed")},
	}}
	o := newOrchestrator(streamer, &nopDispatcher{}, Events{})

	_, err := o.RunTurn(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, 1, o.History().Len(), "failed turn must leave only the system turn")
}

func TestRunTurnFailureAfterToolRollsBack(t *testing.T) {
	call := &stream.ToolCall{ID: "call_1", Name: "bash", Arguments: `{"command":"true"}`}
	streamer := &scriptedStreamer{steps: []scriptedStep{
		{call: call},
		{err: apperrors.Temporary("API_TRANSPORT", "network request failed")},
	}}
	dispatcher := &nopDispatcher{}
	o := newOrchestrator(streamer, dispatcher, Events{})

	_, err := o.RunTurn(context.Background(), "run it")
	require.Error(t, err)
	// The tool ran, but the whole turn is rolled back so the same input
	// can be retried without duplicated turns.
	assert.Equal(t, 1, dispatcher.invoked)
	assert.Equal(t, 1, o.History().Len())
}

func TestRunTurnEmptyResponseAppendsNothing(t *testing.T) {
	streamer := &scriptedStreamer{steps: []scriptedStep{{}}}
	o := newOrchestrator(streamer, &nopDispatcher{}, Events{})

	answer, err := o.RunTurn(context.Background(), "hi")
	require.NoError(t, err)
	assert.Empty(t, answer)
	// system + user only: nothing actionable came back.
	assert.Equal(t, 2, o.History().Len())
}

func TestRunTurnToolLoopExceeded(t *testing.T) {
	call := &stream.ToolCall{ID: "call_x", Name: "bash", Arguments: `{"command":"true"}`}
	steps := make([]scriptedStep, 0, 4)
	for i := 0; i < 4; i++ {
		steps = append(steps, scriptedStep{call: call})
	}
	streamer := &scriptedStreamer{steps: steps}
	dispatcher := &nopDispatcher{}

	o := New(streamer, dispatcher, "system", Config{
		Model:         "grok-code-fast-1",
		MaxTokens:     1024,
		MaxToolCycles: 3,
	}, Events{}, nil)

	_, err := o.RunTurn(context.Background(), "loop forever")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeToolLoopExceeded))
	assert.Equal(t, 3, dispatcher.invoked)
}

func TestSetModel(t *testing.T) {
	streamer := &scriptedStreamer{steps: []scriptedStep{
		{fragments: []string{"a"}},
		{fragments: []string{"b"}},
	}}
	o := newOrchestrator(streamer, &nopDispatcher{}, Events{})

	_, err := o.RunTurn(context.Background(), "one")
	require.NoError(t, err)

	o.SetModel("grok-2-latest")
	assert.Equal(t, "grok-2-latest", o.Model())

	_, err = o.RunTurn(context.Background(), "two")
	require.NoError(t, err)

	assert.Equal(t, "grok-code-fast-1", streamer.requests[0].Model)
	assert.Equal(t, "grok-2-latest", streamer.requests[1].Model)
}

// TestEndToEndToolRoundTrip drives a real streaming client and the real
// dispatcher against a stub server: the first response asks for list_dir,
// the second returns the final answer.
func TestEndToEndToolRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hi"), 0644))

	toolChunk, err := json.Marshal(map[string]any{
		"choices": []map[string]any{{
			"delta": map[string]any{
				"tool_calls": []map[string]any{{
					"index": 0,
					"id":    "call_1",
					"function": map[string]any{
						"name":      "list_dir",
						"arguments": fmt.Sprintf(`{"dirpath":%q}`, dir),
					},
				}},
			},
		}},
	})
	require.NoError(t, err)

	requestCount := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.Header().Set("Content-Type", "text/event-stream")
		if requestCount == 1 {
			fmt.Fprintf(w, "data: %s\n", toolChunk)
			fmt.Fprint(w, "data: [DONE]\n")
			return
		}
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"One file.\"}}]}\n")
		fmt.Fprint(w, "data: [DONE]\n")
	}))
	defer srv.Close()

	client := model.NewClient(&model.Config{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		Timeout:     5 * time.Second,
		BufferLimit: 1 << 20,
	})

	var results []string
	o := New(client, tools.NewDispatcher(), "You are a helpful assistant.", Config{
		Model:         "grok-code-fast-1",
		MaxTokens:     1024,
		MaxToolCycles: 25,
	}, Events{
		OnToolResult: func(name, result string) { results = append(results, result) },
	}, nil)

	answer, err := o.RunTurn(context.Background(), "what is in the directory?")
	require.NoError(t, err)
	assert.Equal(t, "One file.", answer)
	assert.Equal(t, 2, requestCount)

	require.Len(t, results, 1)
	assert.Contains(t, results[0], "Contents of "+dir+":")
	assert.Contains(t, results[0], "hello.txt (2 bytes)")
}
