package app

import (
	"context"
	"io"
	"strings"
	"testing"

	"data-qc/internal/config"
	"data-qc/internal/llm"
)

func TestBuildRequiresCredential(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{
			name:    "gemini without key",
			cfg:     config.Config{LLMProvider: "gemini"},
			wantErr: "GOOGLE_API_KEY is required",
		},
		{
			name:    "openai without key",
			cfg:     config.Config{LLMProvider: "openai"},
			wantErr: "OPENAI_API_KEY is required",
		},
		{
			name:    "unknown provider",
			cfg:     config.Config{LLMProvider: "stub", GoogleAPIKey: "k"},
			wantErr: "invalid LLM_PROVIDER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(context.Background(), tt.cfg, io.Discard)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBuildOpenAI(t *testing.T) {
	cfg := config.Config{
		LLMProvider: "openai",
		OpenAIKey:   "sk-test",
		LLMModel:    "gpt-4o-mini",
		MCPBaseURL:  "http://127.0.0.1:5001/",
		MCPAPIKey:   "token",
	}

	deps, err := Build(context.Background(), cfg, io.Discard)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, ok := deps.LLM.(*llm.OpenAIClient); !ok {
		t.Errorf("expected *llm.OpenAIClient, got %T", deps.LLM)
	}
	if deps.Ingest == nil || deps.Ingest.BaseURL() != "http://127.0.0.1:5001" {
		t.Errorf("unexpected ingest client %+v", deps.Ingest)
	}
	if deps.Log == nil {
		t.Error("expected logger")
	}
}
