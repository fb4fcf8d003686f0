package story

import "context"

// LLMClient abstracts the text-completion service so it can be mocked in tests.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings carries the base configuration for concrete implementations.
type LLMSettings struct {
	Model  string
	APIKey string
	// BaseURL overrides the default endpoint when set (OpenAI-compatible
	// gateways).
	BaseURL string
}
