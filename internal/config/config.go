// Package config handles Grok Codex configuration loading and management.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/zfifteen/Grok-Codex/internal/errors"
)

// DefaultBaseURL is the xAI API root.
const DefaultBaseURL = "https://api.x.ai/v1"

// DefaultModel is used when no model is configured or selected.
const DefaultModel = "grok-code-fast-1"

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".grok-codex")

	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			Model:          DefaultModel,
			MaxTokens:      1024,
			TimeoutSeconds: 0,
		},
		Stream: StreamConfig{
			BufferLimit: 1 << 20, // 1 MiB
		},
		Agent: AgentConfig{
			MaxToolCycles: 25,
		},
		Paths: PathsConfig{
			DataDir:     dataDir,
			HistoryFile: filepath.Join(dataDir, "input_history"),
			LogFile:     filepath.Join(dataDir, "grok-codex.log"),
		},
		Log: LogConfig{
			Level: "disabled",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".grok-codex", "config.toml")
}

// Load loads the configuration from the given path.
// If the file doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, errors.CodeConfigInvalid, "failed to read config file", errors.CategorySystem)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewBuilder(errors.CodeConfigInvalid, "failed to parse config file").
			User().
			Wrap(err).
			WithContext("path", configPath).
			WithSuggestion("Check the TOML syntax in " + configPath).
			Build()
	}

	cfg = expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to the given path.
func (c *Config) Save(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, errors.CodeConfigInvalid, "failed to create config directory", errors.CategorySystem)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return errors.Wrap(err, errors.CodeConfigInvalid, "failed to create config file", errors.CategorySystem)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	return encoder.Encode(c)
}

// Validate checks configured values for obvious mistakes.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.User(errors.CodeConfigInvalid, "api.base_url must not be empty")
	}
	if c.API.MaxTokens <= 0 {
		return errors.User(errors.CodeConfigInvalid, "api.max_tokens must be positive")
	}
	if c.Stream.BufferLimit <= 0 {
		return errors.User(errors.CodeConfigInvalid, "stream.buffer_limit must be positive")
	}
	if c.Agent.MaxToolCycles <= 0 {
		return errors.User(errors.CodeConfigInvalid, "agent.max_tool_cycles must be positive")
	}
	return nil
}

// expandPaths expands a leading ~ in configured paths.
func expandPaths(cfg *Config) *Config {
	cfg.Paths.DataDir = expandHome(cfg.Paths.DataDir)
	cfg.Paths.HistoryFile = expandHome(cfg.Paths.HistoryFile)
	cfg.Paths.LogFile = expandHome(cfg.Paths.LogFile)
	return cfg
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[1:])
}
