// Package terminal implements the interactive REPL: line editing with
// history, direct tool commands, model selection, and streamed chat turns.
package terminal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/zfifteen/Grok-Codex/internal/agent"
	"github.com/zfifteen/Grok-Codex/internal/errors"
	"github.com/zfifteen/Grok-Codex/internal/model"
	"github.com/zfifteen/Grok-Codex/internal/stats"
	"github.com/zfifteen/Grok-Codex/internal/tools"
)

// Terminal drives the interactive session.
type Terminal struct {
	line        *liner.State
	historyFile string

	orch       *agent.Orchestrator
	dispatcher *tools.Dispatcher
	collector  *stats.Collector

	out io.Writer
}

// New creates a terminal with input history loaded from historyFile.
func New(orch *agent.Orchestrator, dispatcher *tools.Dispatcher, collector *stats.Collector, historyFile string) *Terminal {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	t := &Terminal{
		line:        line,
		historyFile: historyFile,
		orch:        orch,
		dispatcher:  dispatcher,
		collector:   collector,
		out:         os.Stdout,
	}
	t.loadHistory()
	return t
}

// DisplayEvents returns the streaming callbacks that echo a turn to out as
// it unfolds.
func DisplayEvents(out io.Writer) agent.Events {
	return agent.Events{
		OnContent: func(fragment string) {
			fmt.Fprint(out, fragment)
		},
		OnToolCall: func(name, arguments string) {
			fmt.Fprintf(out, "\n%s %s(%s)\n", toolStyle.Render("[tool]"), name, arguments)
		},
		OnToolResult: func(name, result string) {
			fmt.Fprintf(out, "%s %s\n", toolStyle.Render("[tool]"), summarize(result, 200))
		},
	}
}

// Close saves input history and releases the line editor.
func (t *Terminal) Close() {
	t.saveHistory()
	t.line.Close()
}

func (t *Terminal) loadHistory() {
	if f, err := os.Open(t.historyFile); err == nil {
		t.line.ReadHistory(f)
		f.Close()
	}
}

func (t *Terminal) saveHistory() {
	f, err := os.OpenFile(t.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	t.line.WriteHistory(f)
}

// Run executes the REPL until the user exits or input reaches EOF.
func (t *Terminal) Run(ctx context.Context) error {
	t.printWelcome()

	for {
		input, err := t.line.Prompt(promptStyle.Render("> "))
		if err != nil {
			// Ctrl+C at the prompt or Ctrl+D both end the session.
			fmt.Fprintln(t.out)
			t.printExitSummary()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		t.line.AppendHistory(input)

		switch {
		case input == "exit" || input == "quit":
			fmt.Fprintln(t.out, "Goodbye!")
			t.printExitSummary()
			return nil
		case input == "help" || input == "/help":
			t.printHelp()
		case input == "/model":
			t.selectModel()
		case strings.HasPrefix(input, "read_file:"):
			t.runLocalTool(ctx, "read_file", map[string]any{
				"filepath": strings.TrimPrefix(input, "read_file:"),
			})
		case strings.HasPrefix(input, "write_file:"):
			rest := strings.TrimPrefix(input, "write_file:")
			path, content, ok := strings.Cut(rest, ":")
			if !ok {
				fmt.Fprintln(t.out, errorStyle.Render("Error: write_file format is 'write_file:<path>:<content>'"))
				continue
			}
			t.runLocalTool(ctx, "write_file", map[string]any{
				"filepath": path,
				"content":  content,
			})
		case strings.HasPrefix(input, "list_dir:"):
			t.runLocalTool(ctx, "list_dir", map[string]any{
				"dirpath": strings.TrimPrefix(input, "list_dir:"),
			})
		case strings.HasPrefix(input, "bash:"):
			t.runLocalTool(ctx, "bash", map[string]any{
				"command": strings.TrimPrefix(input, "bash:"),
			})
		default:
			t.sendMessage(ctx, input)
		}
	}
}

// sendMessage runs one chat turn; streamed output is printed by the display
// callbacks as it arrives.
func (t *Terminal) sendMessage(ctx context.Context, input string) {
	fmt.Fprintln(t.out)
	_, err := t.orch.RunTurn(ctx, input)
	if err != nil {
		fmt.Fprintf(t.out, "%s %s\n", errorStyle.Render("[Error]"), errors.FormatUserMessage(err))
		return
	}
	fmt.Fprint(t.out, "\n\n")
}

// runLocalTool executes a tool directly, without a round trip to the API.
func (t *Terminal) runLocalTool(ctx context.Context, name string, args map[string]any) {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		fmt.Fprintf(t.out, "%s %v\n", errorStyle.Render("[Error]"), err)
		return
	}
	fmt.Fprintln(t.out, t.dispatcher.Invoke(ctx, name, string(argsJSON)))
}

// selectModel shows the numbered preset menu and switches the active model.
func (t *Terminal) selectModel() {
	fmt.Fprintln(t.out, bannerStyle.Render("\n=== Model Selection ==="))
	fmt.Fprintln(t.out)
	for i, preset := range model.Presets {
		fmt.Fprintf(t.out, "  [%d] %s\n", i+1, commandStyle.Render(preset.Label))
		fmt.Fprintf(t.out, "      %s\n", infoStyle.Render(preset.Description))
		if preset.Name == t.orch.Model() {
			fmt.Fprintln(t.out, "      ✓ Currently selected")
		}
		fmt.Fprintln(t.out)
	}

	input, err := t.line.Prompt(fmt.Sprintf("Enter model number (1-%d, or 0 to cancel): ", len(model.Presets)))
	if err != nil {
		fmt.Fprintln(t.out, "Selection cancelled.")
		return
	}

	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || choice < 0 || choice > len(model.Presets) {
		fmt.Fprintf(t.out, "Error: Invalid choice. Please select a number between 1 and %d, or 0 to cancel.\n", len(model.Presets))
		return
	}
	if choice == 0 {
		fmt.Fprintln(t.out, "Selection cancelled.")
		return
	}

	preset := model.Presets[choice-1]
	t.orch.SetModel(preset.Name)
	fmt.Fprintf(t.out, "\n✓ Model changed to: %s\n  %s\n\n", preset.Label, preset.Description)
}

func (t *Terminal) printWelcome() {
	fmt.Fprintln(t.out, bannerStyle.Render("=== Grok Terminal ==="))
	fmt.Fprintf(t.out, "Connected to xAI API (model: %s)\n", t.orch.Model())
	fmt.Fprintln(t.out, infoStyle.Render("Type 'exit' to quit, '/model' to change model, or enter your message."))
	t.printHelp()
}

func (t *Terminal) printHelp() {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "Available commands:")
	fmt.Fprintf(t.out, "  %s              - Send message to Grok AI\n", commandStyle.Render("<text>"))
	fmt.Fprintf(t.out, "  %s              - Display model selection menu\n", commandStyle.Render("/model"))
	fmt.Fprintf(t.out, "  %s    - Read and display file contents\n", commandStyle.Render("read_file:<path>"))
	fmt.Fprintf(t.out, "  %s - Write content to file\n", commandStyle.Render("write_file:<path>:<content>"))
	fmt.Fprintf(t.out, "  %s     - List directory contents\n", commandStyle.Render("list_dir:<path>"))
	fmt.Fprintf(t.out, "  %s      - Execute bash command\n", commandStyle.Render("bash:<command>"))
	fmt.Fprintf(t.out, "  %s                - Exit the terminal\n", commandStyle.Render("exit"))
	fmt.Fprintln(t.out)
}

func (t *Terminal) printExitSummary() {
	fmt.Fprintln(t.out, infoStyle.Render(t.collector.Summary()))
}

// summarize truncates long tool output for inline display.
func summarize(s string, limit int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
