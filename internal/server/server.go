// Package server implements the HTTP API around the classification
// pipeline: one-shot classification plus persisted, retrievable
// classification documents.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mvidal/strata/pkg/layers"
	"github.com/mvidal/strata/pkg/pipeline"
	"github.com/mvidal/strata/pkg/store"
)

// maxBodyBytes bounds request bodies; relation sets are small documents.
const maxBodyBytes = 4 << 20

// Server serves the classification API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. The store may be a MemoryStore when persistence is
// not configured; a nil logger falls back to log.Default().
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/classify", s.handleClassify)
		r.Post("/classifications", s.handleCreateClassification)
		r.Get("/classifications", s.handleListClassifications)
		r.Get("/classifications/{id}", s.handleGetClassification)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// classifyResponse is the body of a one-shot classification.
type classifyResponse struct {
	Name     string          `json:"name,omitempty"`
	Layering layers.Layering `json:"layering"`
	CacheHit bool            `json:"cache_hit"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	set, ok := s.readRelationSet(w, r)
	if !ok {
		return
	}

	layering, hit, err := s.runner.Classify(r.Context(), set, nil)
	if err != nil {
		s.logger.Error("classify failed", "err", err)
		writeError(w, http.StatusInternalServerError, "classification failed")
		return
	}

	writeJSON(w, http.StatusOK, classifyResponse{
		Name:     set.Name,
		Layering: layering,
		CacheHit: hit,
	})
}

func (s *Server) handleCreateClassification(w http.ResponseWriter, r *http.Request) {
	set, ok := s.readRelationSet(w, r)
	if !ok {
		return
	}

	layering, _, err := s.runner.Classify(r.Context(), set, nil)
	if err != nil {
		s.logger.Error("classify failed", "err", err)
		writeError(w, http.StatusInternalServerError, "classification failed")
		return
	}

	doc := store.New(set, layering)
	if err := s.store.Save(r.Context(), doc); err != nil {
		s.logger.Error("save classification failed", "err", err)
		writeError(w, http.StatusInternalServerError, "could not persist classification")
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetClassification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "classification not found")
		return
	}
	if err != nil {
		s.logger.Error("get classification failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not load classification")
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleListClassifications(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("list classifications failed", "err", err)
		writeError(w, http.StatusInternalServerError, "could not list classifications")
		return
	}
	if docs == nil {
		docs = []*store.Classification{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// readRelationSet decodes and validates the request body. On failure it
// writes the error response and returns ok=false.
func (s *Server) readRelationSet(w http.ResponseWriter, r *http.Request) (layers.RelationSet, bool) {
	set, err := layers.ReadRelations(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return layers.RelationSet{}, false
	}
	return set, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusRecorder captures the response code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Microsecond))
	})
}
