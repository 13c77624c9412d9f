// Package executor provides file tool implementations.
package executor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// ReadFile reads file contents from the local filesystem.
type ReadFile struct{}

func (t *ReadFile) Name() string { return "read_file" }

func (t *ReadFile) Description() string {
	return "Read and return the contents of a file from the local filesystem"
}

func (t *ReadFile) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	filepath, ok := input["filepath"].(string)
	if !ok || filepath == "" {
		return NewErrorResult("Error: Missing 'filepath' parameter"), nil
	}

	content, err := os.ReadFile(filepath)
	if err != nil {
		return TimedResult(NewErrorResult(fmt.Sprintf("Error reading file '%s': %v", filepath, err)), start), nil
	}

	return TimedResult(NewSuccessResult(string(content)), start), nil
}

// WriteFile writes content to a file, overwriting existing content.
type WriteFile struct{}

func (t *WriteFile) Name() string { return "write_file" }

func (t *WriteFile) Description() string {
	return "Write content to a file on the local filesystem, overwriting if exists"
}

func (t *WriteFile) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	filepath, ok := input["filepath"].(string)
	content, contentOK := input["content"].(string)
	if !ok || filepath == "" || !contentOK {
		return NewErrorResult("Error: Missing 'filepath' or 'content' parameter"), nil
	}

	if err := os.WriteFile(filepath, []byte(content), 0644); err != nil {
		return TimedResult(NewErrorResult(fmt.Sprintf("Error writing to file '%s': %v", filepath, err)), start), nil
	}

	return TimedResult(NewSuccessResult(fmt.Sprintf("Successfully written to %s", filepath)), start), nil
}

// ListDir lists directory contents with file types and sizes.
type ListDir struct{}

func (t *ListDir) Name() string { return "list_dir" }

func (t *ListDir) Description() string {
	return "List contents of a directory with file/directory type and sizes"
}

func (t *ListDir) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	dirpath, ok := input["dirpath"].(string)
	if !ok || dirpath == "" {
		dirpath = "."
	}

	entries, err := os.ReadDir(dirpath)
	if err != nil {
		return TimedResult(NewErrorResult(fmt.Sprintf("Error listing directory '%s': %v", dirpath, err)), start), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Contents of %s:\n", dirpath)
	for _, entry := range entries {
		if entry.IsDir() {
			fmt.Fprintf(&sb, "  [DIR]  %s/\n", entry.Name())
			continue
		}
		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(&sb, "  [FILE] %s\n", entry.Name())
			continue
		}
		fmt.Fprintf(&sb, "  [FILE] %s (%d bytes)\n", entry.Name(), info.Size())
	}

	return TimedResult(NewSuccessResult(sb.String()), start), nil
}
