// Package server exposes the screening pipeline over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"negscreen/internal/model"
	"negscreen/internal/pipeline"
)

// Server wraps the pipeline behind a small JSON API.
type Server struct {
	pipe *pipeline.Pipeline
	cfg  model.ServerConfig
	log  *zap.Logger
}

// New creates the HTTP surface for a pipeline.
func New(pipe *pipeline.Pipeline, cfg model.ServerConfig, log *zap.Logger) *Server {
	return &Server{pipe: pipe, cfg: cfg, log: log.Named("server")}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleInfo)
	r.Get("/health", s.handleHealth)
	r.Post("/screen", s.handleScreen)
	return r
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("listening", zap.String("addr", s.cfg.Addr))
	return srv.ListenAndServe()
}

type screenResponse struct {
	Report *model.ScreeningReport `json:"report"`
	Entity *model.EntityProfile   `json:"entity,omitempty"`
	Status string                 `json:"status"`
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	var req model.ScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	state := s.pipe.Screen(r.Context(), req)
	if state.Report == nil {
		s.writeError(w, http.StatusInternalServerError, "screening produced no report")
		return
	}

	s.writeJSON(w, http.StatusOK, screenResponse{
		Report: state.Report,
		Entity: state.Entity,
		Status: "success",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"service": "negscreen",
		"endpoints": map[string]string{
			"POST /screen": "run a negative news screening",
			"GET /health":  "liveness check",
		},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
