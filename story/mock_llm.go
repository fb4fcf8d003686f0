package story

import "context"

// MockLLM is a canned implementation for local runs and tests; it never calls
// an external model.
type MockLLM struct {
	// Text overrides the default canned story when set.
	Text string
	// Err is returned instead of text when set.
	Err error
}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Text != "" {
		return m.Text, nil
	}
	return "Once upon a time, the idea \"" + prompt.User + "\" took shape in a quiet town.\n\n" +
		"The days that followed tested everyone involved, and nothing went quite as planned.\n\n" +
		"In the end the town remembered that week for years, and told the story often.", nil
}
