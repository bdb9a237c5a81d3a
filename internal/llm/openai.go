package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient calls the OpenAI Chat Completions API.
type OpenAIClient struct {
	model   openai.ChatModel
	timeout time.Duration
	client  *openai.Client
}

// NewOpenAIClient builds a client with defaults against api.openai.com.
// A zero timeout leaves the call bounded only by ctx.
func NewOpenAIClient(apiKey string, model openai.ChatModel, timeout time.Duration, opts ...option.RequestOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	cli := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIClient{
		model:   model,
		timeout: timeout,
		client:  &cli,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := withOptionalTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(Temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
