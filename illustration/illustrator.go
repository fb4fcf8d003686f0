// Package illustration turns a story paragraph into image bytes via a hosted
// image-generation service.
package illustration

import (
	"context"
	"errors"
)

// Error kinds, inspectable with errors.Is. Generation and download failures
// are deliberately kept distinct.
var (
	// ErrGenerate covers request construction, auth, and service-reported
	// generation failures.
	ErrGenerate = errors.New("image generation failed")
	// ErrEmptyResult means the service responded without a fetchable URL.
	ErrEmptyResult = errors.New("image service returned no result")
	// ErrDownload covers network failures and non-2xx statuses while
	// fetching the generated image.
	ErrDownload = errors.New("image download failed")
)

// Illustrator produces raw image bytes for a text prompt.
type Illustrator interface {
	Illustrate(ctx context.Context, prompt string) ([]byte, error)
}

// Mock is a test double; it returns Data or Err without any network call.
type Mock struct {
	Data []byte
	Err  error
}

func (m Mock) Illustrate(_ context.Context, _ string) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}
