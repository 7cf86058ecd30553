package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/poiesic/assessrec/core"
)

// defaultTopK is the result count when a request omits top_k.
const defaultTopK = 10

// Recommender is the part of the engine the HTTP layer depends on.
type Recommender interface {
	Recommend(ctx context.Context, query string, topK int) ([]core.Recommendation, error)
}

// RecommendRequest is the body of POST /recommend.
type RecommendRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// RecommendResponse wraps the ranked results.
type RecommendResponse struct {
	RecommendedAssessments []core.Recommendation `json:"recommended_assessments"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes the recommendation engine over HTTP.
type Server struct {
	recommender Recommender
	logger      *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates an HTTP server around the recommender.
func New(recommender Recommender, opts ...Option) *Server {
	s := &Server{
		recommender: recommender,
		logger:      slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/recommend", s.handleRecommend)

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully with a short drain window.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		s.writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}
	if req.TopK == 0 {
		req.TopK = defaultTopK
	}
	if req.TopK < 1 {
		s.writeError(w, http.StatusBadRequest, "top_k must be positive")
		return
	}

	results, err := s.recommender.Recommend(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.logger.Error("recommendation failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "recommendation failed")
		return
	}

	// Serialize an empty pool as [], never null.
	if results == nil {
		results = []core.Recommendation{}
	}
	s.writeJSON(w, http.StatusOK, RecommendResponse{RecommendedAssessments: results})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("error writing response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
