package story

import (
	"context"
	"errors"
	"strings"
)

// Writer turns a user prompt into a raw three-paragraph story.
type Writer struct {
	llm LLMClient
}

func NewWriter(llm LLMClient) (*Writer, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Writer{llm: llm}, nil
}

// Generate issues a single completion. Any transport or API failure comes
// back as an error value; there are no retries.
func (w *Writer) Generate(ctx context.Context, userPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", errors.New("prompt must not be empty")
	}

	raw, err := w.llm.Complete(ctx, BuildStoryPrompt(userPrompt))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(raw) == "" {
		return "", errors.New("model returned empty story")
	}
	return raw, nil
}
