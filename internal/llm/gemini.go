package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-pro"

// GeminiClient calls the Gemini API through the Google GenAI SDK.
type GeminiClient struct {
	model   string
	timeout time.Duration
	client  *genai.Client
}

// NewGeminiClient builds a Gemini API client. A zero timeout leaves the call
// bounded only by ctx.
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{
		model:   model,
		timeout: timeout,
		client:  cli,
	}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil gemini client")
	}
	reqCtx, cancel := withOptionalTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.client.Models.GenerateContent(reqCtx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](Temperature),
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}
