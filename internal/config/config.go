package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds minimal runtime configuration. Extend as needed.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LLM
	LLMProvider   string        `env:"LLM_PROVIDER" envDefault:"gemini"` // "gemini" (Google GenAI) or "openai"
	GoogleAPIKey  string        `env:"GOOGLE_API_KEY"`
	GeminiModel   string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-pro"`
	OpenAIKey     string        `env:"OPENAI_API_KEY"`
	LLMModel      string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTimeout    time.Duration `env:"LLM_TIMEOUT" envDefault:"0s"` // 0 disables the per-call timeout
	MaxSampleRows int           `env:"QC_MAX_SAMPLE_ROWS" envDefault:"20"`

	// Ingestion service
	MCPBaseURL string `env:"MCP_BASE_URL" envDefault:"http://127.0.0.1:5001"`
	MCPAPIKey  string `env:"MCP_API_KEY"`
	MCPPort    int    `env:"MCP_PORT" envDefault:"5001"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
