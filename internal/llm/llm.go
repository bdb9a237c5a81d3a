package llm

import "context"

// Temperature is the sampling temperature used for every completion, so the
// provider returns its most likely answer.
const Temperature = 0.0

// Client is a minimal LLM interface to allow pluggable providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
