// ABOUTME: Query orchestrator: validate, embed query, nearest-neighbor search
// ABOUTME: Shapes requests and responses; never computes similarity itself
package core

import (
	"context"
	"strings"

	"github.com/harper/recall/internal/models"
	"github.com/harper/recall/internal/storage"
)

// Search defaults, overridable per searcher via SearcherConfig.
const (
	DefaultSearchThreshold = 0.5
	DefaultSearchCount     = 5
	DefaultMaxSearchCount  = 25
)

// SearcherConfig holds search defaults and limits.
type SearcherConfig struct {
	// Threshold is applied when a request does not set one.
	Threshold float64
	// Count is applied when a request does not set one.
	Count int
	// MaxCount caps the caller-requested count to bound repository load.
	MaxCount int
}

// SearchRequest carries the caller-supplied search parameters. Threshold
// and Count are pointers so absent and zero-valued fields stay distinct.
type SearchRequest struct {
	Query     string   `json:"query"`
	Threshold *float64 `json:"threshold,omitempty"`
	Count     *int     `json:"count,omitempty"`
	Model     string   `json:"model,omitempty"`
}

// Searcher validates a query, obtains its embedding, and delegates the
// similarity search to the repository. The repository's descending-
// similarity ordering is preserved unchanged.
type Searcher struct {
	embedder Embedder
	repo     storage.MemoryRepository
	config   SearcherConfig
}

// NewSearcher creates a Searcher. Zero config fields fall back to the
// package defaults.
func NewSearcher(embedder Embedder, repo storage.MemoryRepository, config SearcherConfig) *Searcher {
	if config.Threshold == 0 {
		config.Threshold = DefaultSearchThreshold
	}
	if config.Count <= 0 {
		config.Count = DefaultSearchCount
	}
	if config.MaxCount <= 0 {
		config.MaxCount = DefaultMaxSearchCount
	}
	return &Searcher{embedder: embedder, repo: repo, config: config}
}

// Search returns the owner's memories most similar to the query text,
// sorted by descending similarity, capped at the requested count, with no
// entry below the threshold. An empty result is a successful search that
// found nothing above threshold, never a masked failure.
func (s *Searcher) Search(ctx context.Context, ownerID string, req SearchRequest) ([]models.SimilarityMatch, error) {
	if ownerID == "" {
		return nil, models.ErrUnauthenticated
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, &models.ValidationError{Field: "query", Reason: "must not be empty"}
	}

	threshold := s.config.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, &models.ValidationError{Field: "threshold", Reason: "must be between 0 and 1"}
	}

	count := s.config.Count
	if req.Count != nil {
		count = *req.Count
	}
	if count <= 0 {
		return nil, &models.ValidationError{Field: "count", Reason: "must be positive"}
	}
	if count > s.config.MaxCount {
		count = s.config.MaxCount
	}

	model := req.Model
	if model == "" {
		model = models.DefaultEmbeddingModel
	}
	if _, err := models.ModelDimension(model); err != nil {
		return nil, err
	}

	vector, err := s.embedder.Embed(ctx, req.Query, model)
	if err != nil {
		return nil, err
	}

	matches, err := s.repo.NearestNeighbors(ctx, vector, ownerID, model, threshold, count)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []models.SimilarityMatch{}
	}

	return matches, nil
}
