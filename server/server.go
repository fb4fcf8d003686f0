// Package server exposes the story pipeline over HTTP: a JSON API plus an
// embedded single-page front end.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"

	"github.com/parsa83esmaeili/Story-Teller/pipeline"
	"github.com/parsa83esmaeili/Story-Teller/story"
)

//go:embed web/index.html
var embeddedStatic embed.FS

const requestTimeout = 3 * time.Minute

type Server struct {
	runner *pipeline.Runner
	store  *resultStore
	log    zerolog.Logger
}

type resultStore struct {
	mu      sync.Mutex
	results map[string]*pipeline.Result
}

func newStore() *resultStore {
	return &resultStore{results: make(map[string]*pipeline.Result)}
}

func (s *resultStore) set(id string, res *pipeline.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[id] = res
}

func (s *resultStore) get(id string) (*pipeline.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.results[id]
	return res, ok
}

func New(runner *pipeline.Runner, log zerolog.Logger) (*Server, error) {
	if runner == nil {
		return nil, errors.New("pipeline runner required")
	}
	return &Server{
		runner: runner,
		store:  newStore(),
		log:    log,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stories", s.handleStoryCreate)
	mux.HandleFunc("/api/stories/", s.handleStoryByID)
	mux.HandleFunc("/", s.handleIndex)
	return s.logMiddleware(mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := embeddedStatic.ReadFile("web/index.html")
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// --- Handlers ---

type storyCreateReq struct {
	Prompt string `json:"prompt"`
}

type storyResp struct {
	StoryID        string    `json:"story_id"`
	Prompt         string    `json:"prompt"`
	Paragraphs     []string  `json:"paragraphs"`
	StoryHTML      string    `json:"story_html"`
	ImageAvailable bool      `json:"image_available"`
	ImageWarning   string    `json:"image_warning,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (s *Server) handleStoryCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req storyCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "prompt must not be empty", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	res, err := s.runner.Run(ctx, req.Prompt)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, story.ErrNoParagraphs) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}

	id := uuid.NewString()
	s.store.set(id, res)
	writeJSON(w, toStoryResp(id, res))
}

func (s *Server) handleStoryByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/stories/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	res, ok := s.store.get(id)
	if !ok {
		http.Error(w, "story not found", http.StatusNotFound)
		return
	}

	switch sub {
	case "":
		writeJSON(w, toStoryResp(id, res))
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="story.pdf"`)
		_, _ = w.Write(res.PDF)
	case "image":
		if len(res.Image) == 0 {
			http.Error(w, "no illustration for this story", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", http.DetectContentType(res.Image))
		_, _ = w.Write(res.Image)
	default:
		http.NotFound(w, r)
	}
}

// --- Helpers ---

func toStoryResp(id string, res *pipeline.Result) storyResp {
	resp := storyResp{
		StoryID:        id,
		Prompt:         res.Prompt,
		Paragraphs:     res.Paragraphs,
		StoryHTML:      renderHTML(res.Paragraphs),
		ImageAvailable: len(res.Image) > 0,
		CreatedAt:      res.CreatedAt,
	}
	if res.ImageErr != nil {
		resp.ImageWarning = res.ImageErr.Error()
	}
	return resp
}

// renderHTML converts the paragraphs to HTML for the front end; model output
// occasionally carries markdown emphasis, which goldmark handles.
func renderHTML(paragraphs []string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(strings.Join(paragraphs, "\n\n")), &buf); err != nil {
		return ""
	}
	return buf.String()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
