package illustration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const downloadTimeout = 30 * time.Second

// Settings carries the base configuration for the OpenAI-compatible image
// endpoint. BaseURL routes requests through a gateway when set.
type Settings struct {
	Model   string
	APIKey  string
	BaseURL string
}

// OpenAIIllustrator implements Illustrator against an OpenAI-compatible
// images endpoint. The service returns a transient URL; a second plain GET
// retrieves the bytes.
type OpenAIIllustrator struct {
	Model  string
	Opts   []option.RequestOption
	client *http.Client
}

// NewOpenAIIllustrator builds the illustrator. A nil httpClient gets a
// default with a bounded download timeout.
func NewOpenAIIllustrator(cfg *Settings, httpClient *http.Client) (*OpenAIIllustrator, error) {
	if cfg == nil {
		return nil, errors.New("image config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("image api key missing")
	}
	if cfg.Model == "" {
		return nil, errors.New("image model is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: downloadTimeout}
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIIllustrator{Model: cfg.Model, Opts: opts, client: httpClient}, nil
}

// Illustrate requests one 1024x1024 image for the prompt and downloads it.
// No retries; callers decide whether a failure is fatal.
func (o *OpenAIIllustrator) Illustrate(ctx context.Context, prompt string) ([]byte, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(o.Model),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize1024x1024,
		Quality:        openai.ImageGenerateParamsQualityStandard,
		Style:          openai.ImageGenerateParamsStyleVivid,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerate, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, ErrEmptyResult
	}

	return fetchImage(ctx, o.client, resp.Data[0].URL)
}

func fetchImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrDownload, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	return data, nil
}
