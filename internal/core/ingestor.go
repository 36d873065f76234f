// ABOUTME: Ingestion orchestrator: validate, embed, persist
// ABOUTME: Aborts before any write when embedding fails
package core

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/harper/recall/internal/models"
	"github.com/harper/recall/internal/storage"
)

// DefaultImportance is applied when a request does not weight the memory.
const DefaultImportance = 1.0

// IngestRequest carries the caller-supplied fields of a new memory. Owner
// identity is never part of the request; it comes from the auth gate.
type IngestRequest struct {
	MemoryType string          `json:"memory_type"`
	Content    json.RawMessage `json:"content"`
	Importance *float64        `json:"importance,omitempty"`
	Model      string          `json:"model,omitempty"`
}

// Ingestor validates memory payloads, obtains their embeddings, and asks
// the repository to persist them.
type Ingestor struct {
	embedder Embedder
	repo     storage.MemoryRepository
}

// NewIngestor creates an Ingestor with its two collaborators injected.
func NewIngestor(embedder Embedder, repo storage.MemoryRepository) *Ingestor {
	return &Ingestor{embedder: embedder, repo: repo}
}

// Ingest embeds the memory content and persists the full record. Any
// embedding failure aborts the operation before anything is written, so a
// stored record always carries its vector.
func (ing *Ingestor) Ingest(ctx context.Context, ownerID string, req IngestRequest) (*models.MemoryRecord, error) {
	if ownerID == "" {
		return nil, models.ErrUnauthenticated
	}
	if strings.TrimSpace(req.MemoryType) == "" {
		return nil, &models.ValidationError{Field: "memory_type", Reason: "must not be empty"}
	}

	text := contentText(req.Content)
	if text == "" {
		return nil, &models.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	model := req.Model
	if model == "" {
		model = models.DefaultEmbeddingModel
	}
	if _, err := models.ModelDimension(model); err != nil {
		return nil, err
	}

	importance := DefaultImportance
	if req.Importance != nil {
		importance = *req.Importance
	}

	vector, err := ing.embedder.Embed(ctx, text, model)
	if err != nil {
		return nil, err
	}

	return ing.repo.Save(ctx, &models.MemoryRecord{
		OwnerID:        ownerID,
		MemoryType:     strings.TrimSpace(req.MemoryType),
		Content:        req.Content,
		Importance:     importance,
		Embedding:      vector,
		EmbeddingModel: model,
	})
}

// contentText serializes the content payload for embedding. A bare JSON
// string embeds as its unquoted text; any other payload embeds as its
// compact JSON form.
func contentText(content json.RawMessage) string {
	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" || trimmed == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return trimmed
}
