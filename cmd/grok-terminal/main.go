// Command grok-terminal is an interactive terminal chat client for the xAI
// API with streaming responses and local tool execution.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zfifteen/Grok-Codex/internal/agent"
	"github.com/zfifteen/Grok-Codex/internal/config"
	apperrors "github.com/zfifteen/Grok-Codex/internal/errors"
	"github.com/zfifteen/Grok-Codex/internal/model"
	"github.com/zfifteen/Grok-Codex/internal/stats"
	"github.com/zfifteen/Grok-Codex/internal/terminal"
	"github.com/zfifteen/Grok-Codex/internal/tools"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", apperrors.FormatUserMessage(err))
		os.Exit(1)
	}
}

func run() error {
	apiKey, err := resolveAPIKey()
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Paths.DataDir, 0755); err != nil {
		return apperrors.Wrap(err, apperrors.CodeConfigInvalid, "failed to create data directory", apperrors.CategorySystem)
	}

	closeLog := setupLogging(cfg)
	defer closeLog()

	client := model.NewClient(&model.Config{
		APIKey:      apiKey,
		BaseURL:     cfg.API.BaseURL,
		Timeout:     time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		BufferLimit: cfg.Stream.BufferLimit,
	})

	systemInstruction := cfg.Agent.SystemInstruction
	if systemInstruction == "" {
		systemInstruction = agent.DefaultSystemInstruction
	}

	dispatcher := tools.NewDispatcher()
	collector := stats.NewCollector()

	orch := agent.New(client, dispatcher, systemInstruction, agent.Config{
		Model:         cfg.API.Model,
		MaxTokens:     cfg.API.MaxTokens,
		MaxToolCycles: cfg.Agent.MaxToolCycles,
	}, terminal.DisplayEvents(os.Stdout), collector)

	term := terminal.New(orch, dispatcher, collector, cfg.Paths.HistoryFile)
	defer term.Close()

	return term.Run(context.Background())
}

// resolveAPIKey reads the key from GROK_API_KEY, falling back to XAI_API_KEY.
func resolveAPIKey() (string, error) {
	if key := os.Getenv("GROK_API_KEY"); key != "" {
		return key, nil
	}
	if key := os.Getenv("XAI_API_KEY"); key != "" {
		return key, nil
	}
	return "", apperrors.NewBuilder(apperrors.CodeAPIKeyMissing, "GROK_API_KEY or XAI_API_KEY environment variable not set").
		User().
		WithSuggestion("Export your API key: export GROK_API_KEY='your-key-here'").
		Build()
}

// setupLogging configures the global zerolog logger from the config and
// returns a cleanup function.
func setupLogging(cfg *config.Config) func() {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || cfg.Log.Level == "" {
		level = zerolog.Disabled
	}
	if level == zerolog.Disabled {
		log.Logger = zerolog.Nop()
		return func() {}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Paths.LogFile), 0755); err != nil {
		log.Logger = zerolog.Nop()
		return func() {}
	}
	f, err := os.OpenFile(cfg.Paths.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.Logger = zerolog.Nop()
		return func() {}
	}

	log.Logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
	return func() { f.Close() }
}
