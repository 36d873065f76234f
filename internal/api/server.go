// ABOUTME: HTTP transport for the memory service
// ABOUTME: Thin JSON layer over the auth gate and the two orchestrators
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/harper/recall/internal/auth"
	"github.com/harper/recall/internal/core"
	"github.com/harper/recall/internal/models"
)

// Server exposes ingestion and search over HTTP. All /v1 routes require a
// bearer token; the owner identity used by the orchestrators always comes
// from the resolved credential, never from the request body.
type Server struct {
	gate     *auth.Gate
	ingestor *core.Ingestor
	searcher *core.Searcher
}

// NewServer creates a Server around the gate and orchestrators.
func NewServer(gate *auth.Gate, ingestor *core.Ingestor, searcher *core.Searcher) *Server {
	return &Server{gate: gate, ingestor: ingestor, searcher: searcher}
}

// Handler returns the route table as an http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/memories", s.handleIngest)
	mux.HandleFunc("POST /v1/memories/search", s.handleSearch)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe runs the HTTP server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
	}
	return server.ListenAndServe()
}

// searchResponse wraps the match list so the body stays extensible.
type searchResponse struct {
	Matches []models.SimilarityMatch `json:"matches"`
}

// errorResponse is the JSON error body. Code is a stable machine-readable
// kind so clients can distinguish bad input from retryable upstream faults.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	ownerID, err := s.gate.Authenticate(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req core.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &models.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	record, err := s.ingestor.Ingest(r.Context(), ownerID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ownerID, err := s.gate.Authenticate(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req core.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &models.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	matches, err := s.searcher.Search(r.Context(), ownerID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Matches: matches})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps the error taxonomy to HTTP statuses: fix-your-input kinds
// map to 4xx, upstream faults to 502, everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal"

	var valErr *models.ValidationError
	var unknownErr *models.UnknownModelError
	var embErr *models.EmbeddingError
	var repoErr *models.RepositoryError

	switch {
	case errors.As(err, &valErr):
		status, code = http.StatusBadRequest, "validation"
	case errors.As(err, &unknownErr):
		status, code = http.StatusBadRequest, "unknown_model"
	case errors.Is(err, models.ErrUnauthenticated):
		status, code = http.StatusUnauthorized, "unauthenticated"
	case errors.As(err, &embErr):
		status, code = http.StatusBadGateway, "embedding_unavailable"
	case errors.As(err, &repoErr):
		status, code = http.StatusInternalServerError, "repository"
	}

	if status >= 500 {
		log.Printf("request failed (%s): %v", code, err)
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("writing response: %v", err)
	}
}
