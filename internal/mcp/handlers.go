// ABOUTME: MCP tool handler implementations for the recall server
// ABOUTME: Maps tool arguments onto the orchestrators and formats results
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/recall/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for the memory tools.
type Handlers struct {
	ingestor *core.Ingestor
	searcher *core.Searcher
	ownerID  string
}

// StoreMemory handles the store_memory tool.
func (h *Handlers) StoreMemory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	memoryType, err := request.RequireString("memory_type")
	if err != nil {
		return mcp.NewToolResultError("memory_type argument is required and must be a string"), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}

	contentJSON, err := json.Marshal(content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding content: %v", err)), nil
	}

	req := core.IngestRequest{
		MemoryType: memoryType,
		Content:    contentJSON,
	}
	if importance := request.GetFloat("importance", 0); importance != 0 {
		req.Importance = &importance
	}

	record, err := h.ingestor.Ingest(ctx, h.ownerID, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("storing memory failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Stored %s memory %s (embedded with %s)",
		record.MemoryType, record.ID, record.EmbeddingModel)), nil
}

// SearchMemory handles the search_memory tool.
func (h *Handlers) SearchMemory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	req := core.SearchRequest{Query: query}
	if threshold := request.GetFloat("threshold", -1); threshold >= 0 {
		req.Threshold = &threshold
	}
	if count := request.GetInt("count", 0); count > 0 {
		req.Count = &count
	}

	matches, err := h.searcher.Search(ctx, h.ownerID, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText("No memories found above the similarity threshold."), nil
	}

	body, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding matches: %v", err)), nil
	}

	return mcp.NewToolResultText(string(body)), nil
}
