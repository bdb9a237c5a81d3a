package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"data-qc/internal/config"
	"data-qc/internal/ingest"
	"data-qc/internal/llm"
	"data-qc/internal/logger"
)

// Deps bundles the runtime dependencies of the QC command.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	LLM    llm.Client
	Ingest *ingest.Client
}

// LoadConfig loads an optional .env file, then reads configuration from the environment.
func LoadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return config.Load(), nil
}

// Build constructs the logger, LLM client and ingestion client from cfg.
// Logs go to logOut. A missing LLM credential is a fatal configuration error.
func Build(ctx context.Context, cfg config.Config, logOut io.Writer) (Deps, error) {
	log := logger.NewWithWriter(logOut, cfg.LogLevel)

	llmClient, err := buildLLM(ctx, cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	return Deps{
		Config: cfg,
		Log:    log,
		LLM:    llmClient,
		Ingest: ingest.NewClient(cfg.MCPBaseURL, cfg.MCPAPIKey),
	}, nil
}

// BuildServer constructs what the mock ingestion server needs: config and a logger.
func BuildServer() (Deps, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return Deps{}, err
	}
	return Deps{
		Config: cfg,
		Log:    logger.New(cfg.LogLevel),
	}, nil
}

func buildLLM(ctx context.Context, cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GoogleAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY is required when LLM_PROVIDER=gemini")
		}
		client, err := llm.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		log.Debug("using Gemini LLM client", "model", cfg.GeminiModel)
		return client, nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		client, err := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.LLMModel), cfg.LLMTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Debug("using OpenAI LLM client", "model", cfg.LLMModel)
		return client, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: gemini, openai)", cfg.LLMProvider)
	}
}
