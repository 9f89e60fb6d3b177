// Package api exposes the aggregator over HTTP for the UI and other
// internal consumers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/adintel/internal/aggregate"
	"github.com/sells-group/adintel/internal/model"
	"github.com/sells-group/adintel/internal/store"
)

// Server wires the HTTP routes to the aggregator and run store.
type Server struct {
	agg   *aggregate.Aggregator
	store store.Store
}

// NewServer creates a Server. The store may be nil, in which case runs are
// not persisted and the run-history endpoints report 503.
func NewServer(agg *aggregate.Aggregator, st store.Store) *Server {
	return &Server{agg: agg, store: st}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/aggregate", s.handleAggregate)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// aggregateRequest is the POST /v1/aggregate body.
type aggregateRequest struct {
	Company         string `json:"company"`
	Domain          string `json:"domain"`
	Country         string `json:"country"`
	Limit           int    `json:"limit"`
	IngestSecondary bool   `json:"ingest_secondary"`
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	var req aggregateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Company == "" && req.Domain == "" {
		writeError(w, http.StatusBadRequest, "company or domain is required")
		return
	}

	ctx := r.Context()
	runID := uuid.NewString()

	if s.store != nil {
		if _, err := s.store.CreateRun(ctx, runID, req.Company, req.Domain); err != nil {
			zap.L().Error("create run", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "persist run")
			return
		}
	}

	result, err := s.agg.Run(ctx, aggregate.Request{
		RunID:           runID,
		Company:         req.Company,
		Domain:          req.Domain,
		Country:         req.Country,
		Limit:           req.Limit,
		IngestSecondary: req.IngestSecondary,
	})
	if err != nil {
		if s.store != nil {
			if failErr := s.store.FailRun(ctx, runID, err.Error()); failErr != nil {
				zap.L().Error("record run failure", zap.Error(failErr))
			}
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.store != nil {
		if err := s.store.CompleteRun(ctx, runID, result); err != nil {
			zap.L().Error("complete run", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run persistence disabled")
		return
	}

	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		zap.L().Error("get run", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "get run")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run persistence disabled")
		return
	}

	filter := store.RunFilter{
		Status:  model.RunStatus(r.URL.Query().Get("status")),
		Company: r.URL.Query().Get("company"),
	}
	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		zap.L().Error("list runs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list runs")
		return
	}
	if runs == nil {
		runs = []model.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
