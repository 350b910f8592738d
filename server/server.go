// Package server exposes the pipeline over HTTP: one invocation endpoint
// plus a health probe. Every failure path yields exactly one structured
// error object annotated by category; a request is never left silently
// unanswered.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/agentgraph/agentgraph/config"
	"github.com/agentgraph/agentgraph/core"
	"github.com/agentgraph/agentgraph/gateway"
	"github.com/agentgraph/agentgraph/graph"
	"github.com/agentgraph/agentgraph/logging"
	"github.com/agentgraph/agentgraph/report"
)

// maxPayloadBytes bounds inbound invocation payloads.
const maxPayloadBytes = 1 << 20

// sessionHeader carries the caller's session identifier. A fresh id is
// generated when absent.
const sessionHeader = "X-Session-Id"

// Error categories annotating mid-run failures.
const (
	CategoryConfiguration = "configuration"
	CategoryCapability    = "capability"
	CategoryConnectivity  = "connectivity"
	CategoryGeneric       = "generic"
)

// Invoker runs the pipeline for one request. Satisfied by
// agentgraph.Pipeline.
type Invoker interface {
	Invoke(ctx context.Context, sessionID, prompt string) (*report.Report, error)
}

// Server handles invocation requests.
type Server struct {
	pipeline Invoker
	logger   logging.Logger
}

// New constructs a Server around a pipeline.
func New(pipeline Invoker, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Server{pipeline: pipeline, logger: logger}
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/ping", s.handlePing)
	r.Post("/invocations", s.handleInvocation)
	return r
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleInvocation(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, CategoryGeneric, "failed to read request body")
		return
	}

	prompt, err := ResolvePrompt(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, CategoryConfiguration, err.Error())
		return
	}

	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		sessionID = core.NewID()
	}

	rep, err := s.pipeline.Invoke(r.Context(), sessionID, prompt)
	if err != nil {
		category := Categorize(err)
		s.logger.Error("invocation failed", "category", category, "error", err)
		s.writeError(w, statusFor(category), category, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// Categorize maps a pipeline error onto its reporting category.
func Categorize(err error) string {
	var missingEnv *config.MissingEnvError
	var validation *graph.ValidationError
	if errors.As(err, &missingEnv) || errors.As(err, &validation) {
		return CategoryConfiguration
	}

	var catalogErr *gateway.CatalogError
	if errors.As(err, &catalogErr) {
		// Transport failures while listing tools are connectivity problems;
		// an empty or overflowing catalog is a capability problem.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return CategoryConnectivity
		}
		return CategoryCapability
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) {
		return CategoryConnectivity
	}

	return CategoryGeneric
}

func statusFor(category string) int {
	switch category {
	case CategoryConfiguration:
		return http.StatusBadRequest
	case CategoryConnectivity:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, category, msg string) {
	writeJSON(w, status, map[string]string{"error": msg, "category": category})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
