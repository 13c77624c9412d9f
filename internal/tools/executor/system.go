// Package executor provides the shell command tool implementation.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Bash executes a shell command and returns combined output with the exit
// code appended, matching the text shape the model is prompted to expect.
type Bash struct{}

func (t *Bash) Name() string { return "bash" }

func (t *Bash) Description() string {
	return "Execute a bash command and return stdout, stderr, and exit code"
}

func (t *Bash) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	command, ok := input["command"].(string)
	if !ok || command == "" {
		return NewErrorResult("Error: Missing 'command' parameter"), nil
	}

	cmd := exec.CommandContext(ctx, "bash", "-c", command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			exitCode = exitErr.ExitCode()
		case ctx.Err() != nil:
			return TimedResult(NewErrorResult(fmt.Sprintf("Error executing command: %v", ctx.Err())), start), nil
		default:
			return TimedResult(NewErrorResult(fmt.Sprintf("Error executing command: %v", err)), start), nil
		}
	}

	output := strings.TrimSpace(stdout.String())
	if errText := strings.TrimSpace(stderr.String()); errText != "" {
		output = output + "\n" + errText
	}

	return TimedResult(NewSuccessResult(fmt.Sprintf("%s\n[Exit code: %d]", output, exitCode)), start), nil
}
