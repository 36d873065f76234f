// ABOUTME: Core data types for memory records and similarity search results
// ABOUTME: Defines MemoryRecord and SimilarityMatch structures
package models

import (
	"encoding/json"
	"time"
)

// MemoryRecord is a single stored memory with its embedding vector.
// The ID and CreatedAt fields are assigned by the repository on save;
// OwnerID always comes from the authenticated caller, never from request
// parameters.
type MemoryRecord struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"owner_id"`
	MemoryType     string          `json:"memory_type"`
	Content        json.RawMessage `json:"content"`
	Importance     float64         `json:"importance"`
	Embedding      []float64       `json:"-"`
	EmbeddingModel string          `json:"embedding_model"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SimilarityMatch is a query-time view of a matched memory. Similarity is
// normalized cosine similarity in [0, 1], computed by the repository's
// nearest-neighbor search and never recomputed by the orchestration layer.
type SimilarityMatch struct {
	MemoryID   string          `json:"memory_id"`
	MemoryType string          `json:"memory_type"`
	Content    json.RawMessage `json:"content"`
	Importance float64         `json:"importance"`
	Similarity float64         `json:"similarity"`
}
