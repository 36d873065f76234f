// ABOUTME: Tests for MCP tool handlers
// ABOUTME: Verifies argument handling, owner scoping, and result formatting

package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harper/recall/internal/core"
	"github.com/harper/recall/internal/models"
	"github.com/harper/recall/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text, model string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	dim, err := models.ModelDimension(model)
	if err != nil {
		return nil, err
	}
	vector := make([]float64, dim)
	vector[0] = 1
	return vector, nil
}

type fakeRepo struct {
	saved     []*models.MemoryRecord
	nnOwnerID string
	matches   []models.SimilarityMatch
}

func (f *fakeRepo) Save(ctx context.Context, record *models.MemoryRecord) (*models.MemoryRecord, error) {
	stored := *record
	stored.ID = "mem-1"
	f.saved = append(f.saved, &stored)
	return &stored, nil
}

func (f *fakeRepo) NearestNeighbors(ctx context.Context, vector []float64, ownerID, model string, threshold float64, count int) ([]models.SimilarityMatch, error) {
	f.nnOwnerID = ownerID
	return f.matches, nil
}

var _ storage.MemoryRepository = (*fakeRepo)(nil)

func newTestHandlers(t *testing.T, repo *fakeRepo, embedder *fakeEmbedder) *Handlers {
	t.Helper()
	return &Handlers{
		ingestor: core.NewIngestor(embedder, repo),
		searcher: core.NewSearcher(embedder, repo, core.SearcherConfig{}),
		ownerID:  "local",
	}
}

func callToolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestStoreMemory(t *testing.T) {
	repo := &fakeRepo{}
	h := newTestHandlers(t, repo, &fakeEmbedder{})

	result, err := h.StoreMemory(context.Background(), callToolRequest(map[string]any{
		"memory_type": "preference",
		"content":     "likes dark mode",
	}))
	if err != nil {
		t.Fatalf("StoreMemory() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("StoreMemory() returned tool error: %s", resultText(t, result))
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(repo.saved))
	}
	if repo.saved[0].OwnerID != "local" {
		t.Errorf("OwnerID = %q, want %q", repo.saved[0].OwnerID, "local")
	}
	if repo.saved[0].MemoryType != "preference" {
		t.Errorf("MemoryType = %q, want %q", repo.saved[0].MemoryType, "preference")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "mem-1") {
		t.Errorf("result should contain record ID, got %q", text)
	}
}

func TestStoreMemory_Importance(t *testing.T) {
	repo := &fakeRepo{}
	h := newTestHandlers(t, repo, &fakeEmbedder{})

	result, err := h.StoreMemory(context.Background(), callToolRequest(map[string]any{
		"memory_type": "fact",
		"content":     "birthday is in June",
		"importance":  2.5,
	}))
	if err != nil {
		t.Fatalf("StoreMemory() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("StoreMemory() returned tool error: %s", resultText(t, result))
	}

	if repo.saved[0].Importance != 2.5 {
		t.Errorf("Importance = %v, want 2.5", repo.saved[0].Importance)
	}
}

func TestStoreMemory_MissingArguments(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing memory_type", map[string]any{"content": "something"}},
		{"missing content", map[string]any{"memory_type": "fact"}},
		{"no arguments", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			embedder := &fakeEmbedder{}
			h := newTestHandlers(t, repo, embedder)

			result, err := h.StoreMemory(context.Background(), callToolRequest(tt.args))
			if err != nil {
				t.Fatalf("StoreMemory() error = %v, tool errors must be in the result", err)
			}
			if !result.IsError {
				t.Error("expected tool error result")
			}
			if embedder.calls != 0 {
				t.Errorf("embedder called %d times, want 0", embedder.calls)
			}
			if len(repo.saved) != 0 {
				t.Errorf("saved %d records, want 0", len(repo.saved))
			}
		})
	}
}

func TestStoreMemory_EmbedFailure(t *testing.T) {
	repo := &fakeRepo{}
	embedder := &fakeEmbedder{err: errors.New("provider down")}
	h := newTestHandlers(t, repo, embedder)

	result, err := h.StoreMemory(context.Background(), callToolRequest(map[string]any{
		"memory_type": "fact",
		"content":     "something",
	}))
	if err != nil {
		t.Fatalf("StoreMemory() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error result when embedding fails")
	}
	if len(repo.saved) != 0 {
		t.Errorf("saved %d records, want 0", len(repo.saved))
	}
}

func TestSearchMemory(t *testing.T) {
	repo := &fakeRepo{
		matches: []models.SimilarityMatch{
			{MemoryID: "mem-1", MemoryType: "preference", Content: []byte(`"likes dark mode"`), Importance: 1, Similarity: 0.91},
		},
	}
	h := newTestHandlers(t, repo, &fakeEmbedder{})

	result, err := h.SearchMemory(context.Background(), callToolRequest(map[string]any{
		"query": "UI preferences",
	}))
	if err != nil {
		t.Fatalf("SearchMemory() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("SearchMemory() returned tool error: %s", resultText(t, result))
	}

	if repo.nnOwnerID != "local" {
		t.Errorf("search owner = %q, want %q", repo.nnOwnerID, "local")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "mem-1") {
		t.Errorf("result should contain match ID, got %q", text)
	}
	if !strings.Contains(text, "0.91") {
		t.Errorf("result should contain similarity, got %q", text)
	}
}

func TestSearchMemory_NoMatches(t *testing.T) {
	repo := &fakeRepo{}
	h := newTestHandlers(t, repo, &fakeEmbedder{})

	result, err := h.SearchMemory(context.Background(), callToolRequest(map[string]any{
		"query": "anything",
	}))
	if err != nil {
		t.Fatalf("SearchMemory() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("SearchMemory() returned tool error: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "No memories found") {
		t.Errorf("empty search should say so, got %q", text)
	}
}

func TestSearchMemory_MissingQuery(t *testing.T) {
	repo := &fakeRepo{}
	embedder := &fakeEmbedder{}
	h := newTestHandlers(t, repo, embedder)

	result, err := h.SearchMemory(context.Background(), callToolRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("SearchMemory() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error result")
	}
	if embedder.calls != 0 {
		t.Errorf("embedder called %d times, want 0", embedder.calls)
	}
}

func TestRegisterTools(t *testing.T) {
	repo := &fakeRepo{}
	embedder := &fakeEmbedder{}
	ingestor := core.NewIngestor(embedder, repo)
	searcher := core.NewSearcher(embedder, repo, core.SearcherConfig{})

	server := mcpserver.NewMCPServer("recall-test", "0.0.0")
	handlers := RegisterTools(server, ingestor, searcher, "local")

	if handlers == nil {
		t.Fatal("RegisterTools returned nil handlers")
	}
	if handlers.ownerID != "local" {
		t.Errorf("ownerID = %q, want %q", handlers.ownerID, "local")
	}
}
