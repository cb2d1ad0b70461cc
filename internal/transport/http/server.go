package transporthttp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"DemandScout/internal/domain"
	"DemandScout/internal/usecase"
)

const crawlTimeout = 2 * time.Minute

// Runner is the slice of the pipeline the API needs.
type Runner interface {
	Run(ctx context.Context, platform domain.Platform, maxPosts int) domain.RunResult
	Stats() domain.RunStats
	Platforms() []domain.Platform
}

// HealthReader reads back per-platform crawl health for the stats endpoint.
type HealthReader interface {
	SourceHealth(ctx context.Context, platform domain.Platform) (domain.SourceHealth, error)
}

// Server exposes the crawl trigger, run registry, and stats over HTTP.
type Server struct {
	runner          Runner
	registry        *usecase.RunRegistry
	health          HealthReader
	defaultMaxPosts int
	logger          *slog.Logger
}

// NewServer wires the pipeline and run registry into the API surface. The
// health reader may be nil when no store is configured.
func NewServer(runner Runner, registry *usecase.RunRegistry, health HealthReader, defaultMaxPosts int, logger *slog.Logger) *Server {
	if defaultMaxPosts <= 0 {
		defaultMaxPosts = usecase.DefaultMaxPosts
	}
	return &Server{
		runner:          runner,
		registry:        registry,
		health:          health,
		defaultMaxPosts: defaultMaxPosts,
		logger:          logger,
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("POST /api/crawl", s.handleCrawl)
	mux.HandleFunc("GET /api/runs", s.handleRuns)
	mux.HandleFunc("GET /api/runs/{id}", s.handleRun)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"as_of":     time.Now().UTC(),
		"platforms": s.runner.Platforms(),
		"stats":     s.runner.Stats(),
		"sources":   s.sourceHealth(r.Context()),
	})
}

// sourceHealth collects the crawl-health row of every platform. Platforms
// never crawled yet have no row and are simply absent from the response.
func (s *Server) sourceHealth(ctx context.Context) []domain.SourceHealth {
	sources := []domain.SourceHealth{}
	if s.health == nil {
		return sources
	}
	for _, platform := range s.runner.Platforms() {
		health, err := s.health.SourceHealth(ctx, platform)
		if err != nil {
			continue
		}
		sources = append(sources, health)
	}
	return sources
}

// handleCrawl triggers one synchronous pipeline run. The run outcome is
// recorded in the registry either way; the HTTP status reflects only
// transport-level problems, a failed run still returns 200 with
// status=error in the body.
func (s *Server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Platform string `json:"platform"`
		MaxPosts int    `json:"max_posts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	platform := domain.Platform(payload.Platform)
	if platform == "" {
		platform = domain.PlatformHackerNews
	}
	maxPosts := payload.MaxPosts
	if maxPosts <= 0 {
		maxPosts = s.defaultMaxPosts
	}

	ctx, cancel := context.WithTimeout(r.Context(), crawlTimeout)
	defer cancel()

	var id string
	if s.registry != nil {
		id = s.registry.Create(platform)
	}

	result := s.runner.Run(ctx, platform, maxPosts)

	if s.registry != nil {
		if err := s.registry.Complete(id, result); err != nil && s.logger != nil {
			s.logger.Warn("run registry update failed", "run_id", id, "error", err)
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"run_id": id,
		"result": result,
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, _ *http.Request) {
	if s.registry == nil {
		s.writeJSON(w, http.StatusOK, []usecase.RunRecord{})
		return
	}
	s.writeJSON(w, http.StatusOK, s.registry.List())
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	record, ok := s.registry.Get(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && s.logger != nil {
		s.logger.Warn("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
