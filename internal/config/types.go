// Package config defines configuration types for Grok Codex.
package config

// Config is the root configuration.
type Config struct {
	API    APIConfig    `toml:"api"`
	Stream StreamConfig `toml:"stream"`
	Agent  AgentConfig  `toml:"agent"`
	Paths  PathsConfig  `toml:"paths"`
	Log    LogConfig    `toml:"log"`
}

// APIConfig configures the xAI chat completions endpoint.
type APIConfig struct {
	// BaseURL is the API root, e.g. https://api.x.ai/v1
	BaseURL string `toml:"base_url"`

	// Model is the default model identifier.
	Model string `toml:"model"`

	// MaxTokens is the per-response token budget.
	MaxTokens int `toml:"max_tokens"`

	// TimeoutSeconds bounds a whole request/stream. 0 means no timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// StreamConfig configures the SSE decode layer.
type StreamConfig struct {
	// BufferLimit caps the line reassembly buffer in bytes.
	// Exceeding it fails the stream with an explicit overflow error.
	BufferLimit int `toml:"buffer_limit"`
}

// AgentConfig configures the orchestration loop.
type AgentConfig struct {
	// MaxToolCycles bounds successive tool rounds within one user turn.
	MaxToolCycles int `toml:"max_tool_cycles"`

	// SystemInstruction overrides the built-in system prompt when non-empty.
	SystemInstruction string `toml:"system_instruction"`
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	DataDir     string `toml:"data_dir"`
	HistoryFile string `toml:"history_file"`
	LogFile     string `toml:"log_file"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level is a zerolog level name ("debug", "info", ...) or "disabled".
	Level string `toml:"level"`
}
