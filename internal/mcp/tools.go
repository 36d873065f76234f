// ABOUTME: MCP tool definitions and registration for the recall server
// ABOUTME: Defines JSON schemas for the store and search tools
package mcp

import (
	"github.com/harper/recall/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the memory tools with the server. The owner is
// fixed at startup: the stdio transport serves exactly one local user,
// authenticated by process ownership.
func RegisterTools(server *mcpserver.MCPServer, ingestor *core.Ingestor, searcher *core.Searcher, ownerID string) *Handlers {
	handlers := &Handlers{
		ingestor: ingestor,
		searcher: searcher,
		ownerID:  ownerID,
	}

	server.AddTool(mcp.Tool{
		Name:        "store_memory",
		Description: "Store a memory with its semantic embedding so it can be recalled later by meaning.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"memory_type": map[string]interface{}{
					"type":        "string",
					"description": "Classification tag, e.g. fact, preference, event",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "The memory text to store",
				},
				"importance": map[string]interface{}{
					"type":        "number",
					"description": "Presentation weight (default: 1)",
					"default":     1,
				},
			},
			Required: []string{"memory_type", "content"},
		},
	}, handlers.StoreMemory)

	server.AddTool(mcp.Tool{
		Name:        "search_memory",
		Description: "Find stored memories semantically similar to a query, ranked by similarity.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query text",
				},
				"threshold": map[string]interface{}{
					"type":        "number",
					"description": "Minimum similarity in [0, 1] (default: 0.5)",
					"default":     0.5,
				},
				"count": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of matches (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchMemory)

	return handlers
}
