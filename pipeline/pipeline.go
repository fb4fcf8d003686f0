// Package pipeline sequences story generation, illustration, and document
// assembly for a single prompt.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/parsa83esmaeili/Story-Teller/document"
	"github.com/parsa83esmaeili/Story-Teller/illustration"
	"github.com/parsa83esmaeili/Story-Teller/story"
)

const (
	storyTimeout = 60 * time.Second
	imageTimeout = 60 * time.Second

	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Result is everything one run produces. Image is nil and ImageErr non-nil
// when the run degraded to an imageless document.
type Result struct {
	Prompt     string
	Paragraphs []string
	Rendered   string
	Image      []byte
	ImageErr   error
	PDF        []byte
	CreatedAt  time.Time
}

// Runner wires the three stages together. Construct via New; all
// collaborators are injected so tests can substitute fakes.
type Runner struct {
	writer      *story.Writer
	illustrator illustration.Illustrator
	builder     *document.Builder
	memo        *cache.Cache
	log         zerolog.Logger
}

func New(writer *story.Writer, ill illustration.Illustrator, builder *document.Builder, log zerolog.Logger) (*Runner, error) {
	if writer == nil {
		return nil, errors.New("story writer is required")
	}
	if ill == nil {
		return nil, errors.New("illustrator is required")
	}
	if builder == nil {
		return nil, errors.New("document builder is required")
	}
	return &Runner{
		writer:      writer,
		illustrator: ill,
		builder:     builder,
		memo:        cache.New(cacheTTL, cacheCleanup),
		log:         log,
	}, nil
}

// Run executes the pipeline for one prompt. The stages are strictly ordered:
// the story must complete before illustration (the image prompt is the first
// paragraph), and illustration must resolve before assembly. Story and parse
// failures are fatal; illustration failures degrade the run to an imageless
// document. Identical prompts within the cache TTL reuse the stored result.
func (r *Runner) Run(ctx context.Context, prompt string) (*Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt must not be empty")
	}

	if hit, ok := r.memo.Get(prompt); ok {
		r.log.Debug().Msg("serving memoized result")
		return hit.(*Result), nil
	}

	r.log.Info().Msg("generating story")
	storyCtx, cancel := context.WithTimeout(ctx, storyTimeout)
	raw, err := r.writer.Generate(storyCtx, prompt)
	cancel()
	if err != nil {
		return nil, err
	}

	paragraphs, err := story.SplitParagraphs(raw)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Prompt:     prompt,
		Paragraphs: paragraphs,
		Rendered:   story.Render(paragraphs),
		CreatedAt:  time.Now(),
	}

	r.log.Info().Msg("creating illustration from the first paragraph")
	imgCtx, cancel := context.WithTimeout(ctx, imageTimeout)
	img, err := r.illustrator.Illustrate(imgCtx, paragraphs[0])
	cancel()
	if err != nil {
		r.log.Warn().Err(err).Msg("illustration failed; continuing without image")
		res.ImageErr = err
	} else {
		res.Image = img
	}

	pdf, err := r.builder.Build(paragraphs, res.Image, prompt)
	if err != nil {
		return nil, err
	}
	res.PDF = pdf

	r.memo.SetDefault(prompt, res)
	return res, nil
}
