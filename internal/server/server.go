package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/tallyhq/tally/internal/handler"
	"github.com/tallyhq/tally/internal/middleware"
	"github.com/tallyhq/tally/internal/tenant"
)

type Server struct {
	tenants     *tenant.Manager
	habitH      *handler.HabitHandler
	pageH       *handler.PageHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(tenants *tenant.Manager, logger *slog.Logger) *Server {
	return &Server{
		tenants:     tenants,
		habitH:      handler.NewHabitHandler(tenants, logger.With("component", "habit")),
		pageH:       handler.NewPageHandler(tenants, logger.With("component", "page")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /", s.pageH.Board)
	mux.HandleFunc("GET /m", s.pageH.CompactBoard)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	mux.HandleFunc("GET /health", s.healthHandler)

	// Habit API routes
	mux.HandleFunc("GET /api/habits", s.habitH.List)
	mux.HandleFunc("GET /api/habits/{id}", s.habitH.Get)
	mux.HandleFunc("POST /api/habits", s.mutating(s.habitH.Create))
	mux.HandleFunc("PUT /api/habits/{id}", s.mutating(s.habitH.Update))
	mux.HandleFunc("DELETE /api/habits/{id}", s.mutating(s.habitH.Delete))
	mux.HandleFunc("POST /api/habits/reorder", s.mutating(s.habitH.Reorder))

	// Log API routes
	mux.HandleFunc("POST /api/logs/toggle", s.mutating(s.habitH.ToggleLog))
	mux.HandleFunc("PUT /api/logs/{id}", s.mutating(s.habitH.UpdateLog))
	mux.HandleFunc("GET /api/logs", s.habitH.ListLogsByRange)

	// Assembled grid, shared by the desktop and mobile clients
	mux.HandleFunc("GET /api/grid", s.habitH.Grid)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// mutating wraps write endpoints with a per-IP rate limit.
func (s *Server) mutating(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 120, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
